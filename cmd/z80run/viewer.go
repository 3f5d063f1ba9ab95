//go:build !headless

// viewer.go - Ebiten window showing memory as a 256x256 byte map

package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/intuitionamiga/z80conform/fuse"
	"github.com/intuitionamiga/z80conform/z80"
)

const (
	viewWidth   = 256
	mapHeight   = 256
	panelHeight = 44
	viewHeight  = mapHeight + panelHeight
	viewScale   = 2
)

var (
	panelColor = color.RGBA{0x20, 0x20, 0x28, 0xFF}
	textColor  = color.RGBA{0xE0, 0xE0, 0xE0, 0xFF}
	pcColor    = [4]byte{0xFF, 0x40, 0x40, 0xFF}
)

// viewer runs one frame per tick and paints one pixel per memory byte,
// address 0 at the top left, with the byte at PC marked in red.
type viewer struct {
	r      *runner
	mem    *fuse.MemoryImage
	mapImg *ebiten.Image
	pixels []byte
}

func runViewer(r *runner, mem *fuse.MemoryImage) error {
	v := &viewer{
		r:      r,
		mem:    mem,
		pixels: make([]byte, viewWidth*mapHeight*4),
	}
	ebiten.SetWindowSize(viewWidth*viewScale, viewHeight*viewScale)
	ebiten.SetWindowTitle("z80run")
	ebiten.SetTPS(50)
	return ebiten.RunGame(v)
}

func (v *viewer) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if !v.r.finished() {
		v.r.runFrame()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.mapImg == nil {
		v.mapImg = ebiten.NewImage(viewWidth, mapHeight)
	}
	pc := int(v.r.driver.State().PC)
	for addr, b := range v.mem {
		px := v.pixels[addr*4 : addr*4+4]
		if addr == pc {
			copy(px, pcColor[:])
			continue
		}
		px[0], px[1], px[2], px[3] = b, b, b, 0xFF
	}
	v.mapImg.WritePixels(v.pixels)
	screen.DrawImage(v.mapImg, nil)

	panel := screen.SubImage(image.Rect(0, mapHeight, viewWidth, viewHeight)).(*ebiten.Image)
	panel.Fill(panelColor)
	for i, line := range v.statusLines() {
		text.Draw(screen, line, basicfont.Face7x13, 2, mapHeight+12+i*13, textColor)
	}
}

func (v *viewer) statusLines() []string {
	s := v.r.driver.State()
	m := &s.Main
	return []string{
		fmt.Sprintf("PC %04X SP %04X AF %04X", s.PC, m.Word(z80.SP), m.Word(z80.AF)),
		fmt.Sprintf("BC %04X DE %04X HL %04X", m.Word(z80.BC), m.Word(z80.DE), m.Word(z80.HL)),
		fmt.Sprintf("F %d/%d T %d %s", v.r.frame, v.r.frames, v.r.totalTStates(), interruptState(s)),
	}
}

func interruptState(s *z80.State) string {
	if s.InterruptsEnabled() {
		return "EI"
	}
	return "DI"
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return viewWidth, viewHeight
}

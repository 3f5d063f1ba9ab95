//go:build headless

package main

import (
	"errors"

	"github.com/intuitionamiga/z80conform/fuse"
)

func runViewer(*runner, *fuse.MemoryImage) error {
	return errors.New("viewer not available in headless builds")
}

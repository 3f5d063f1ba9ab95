//go:build !headless

// clipboard.go - System clipboard export

package main

import "golang.design/x/clipboard"

func copyToClipboard(text string) error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

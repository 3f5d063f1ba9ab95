//go:build headless

package main

import "errors"

func playSamples([]float32, int) error {
	return errors.New("audio not available in headless builds")
}

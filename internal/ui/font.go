// Package ui implements the draughts board and side panel using Ebitengine.
package ui

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 16.0
	coordFontSize   = 11.0
)

var (
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
)

func init() {
	var err error
	if regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		log.Printf("Failed to load regular font: %v", err)
	}
	if boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		log.Printf("Failed to load bold font: %v", err)
	}
}

// face returns a face of the given logical size, scaled for the display.
// It returns nil if the font failed to load.
func face(src *text.GoTextFaceSource, size float64) *text.GoTextFace {
	if src == nil {
		return nil
	}
	return &text.GoTextFace{Source: src, Size: size * UIScale}
}

// GetRegularFace returns the regular body face.
func GetRegularFace() *text.GoTextFace {
	return face(regularSource, defaultFontSize)
}

// GetBoldFace returns the bold heading face.
func GetBoldFace() *text.GoTextFace {
	return face(boldSource, titleFontSize)
}

// GetFaceWithSize returns a regular face with a custom size.
func GetFaceWithSize(size float64) *text.GoTextFace {
	return face(regularSource, size)
}

// MeasureText returns the width and height of s in screen pixels.
func MeasureText(s string, f *text.GoTextFace) (width, height float64) {
	if f == nil {
		return 0, 0
	}
	return text.Measure(s, f, 0)
}

// drawText draws s with its top-left corner at logical (x, y).
func drawText(dst *ebiten.Image, s string, f *text.GoTextFace, x, y float64, clr color.Color) {
	if f == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x*UIScale, y*UIScale)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, f, op)
}

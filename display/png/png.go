// Package png draws a panel frame as a character LCD image.
package png

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"gopper-panel/menu"
)

// Cell geometry in pixels
const (
	CharWidth  = 12.0
	CharHeight = 20.0
	Border     = 16.0
	FontSize   = 18.0
)

var (
	// Backlight and pixel colors of a yellow-green STN panel
	Backlight = color.RGBA{0x9c, 0xc4, 0x3c, 0xff}
	Pixel     = color.RGBA{0x1e, 0x2a, 0x10, 0xff}
)

// Size returns the image size for a frame
func Size(f *menu.Frame) (int, int) {
	return int(float64(f.Columns)*CharWidth + 2*Border), int(float64(f.Rows)*CharHeight + 2*Border)
}

// Image renders the frame
func Image(f *menu.Frame) (image.Image, error) {
	dc, err := draw(f)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Save renders the frame to a PNG file
func Save(f *menu.Frame, filename string) error {
	dc, err := draw(f)
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}

func draw(f *menu.Frame) (*gg.Context, error) {
	if f.Columns <= 0 || f.Rows <= 0 {
		return nil, fmt.Errorf("empty frame %dx%d", f.Columns, f.Rows)
	}
	w, h := Size(f)
	dc := gg.NewContext(w, h)
	dc.SetColor(Backlight)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	for row := 0; row < f.Rows; row++ {
		y := Border + float64(row)*CharHeight
		fg := Pixel
		if f.Inverted(row) {
			dc.SetColor(Pixel)
			dc.DrawRectangle(Border, y, float64(f.Columns)*CharWidth, CharHeight)
			dc.Fill()
			fg = Backlight
		}
		dc.SetColor(fg)
		line := f.Line(row)
		for col := 0; col < len(line); col++ {
			if line[col] == ' ' {
				continue
			}
			x := Border + float64(col)*CharWidth
			dc.DrawStringAnchored(string(line[col]), x+CharWidth/2, y+CharHeight/2, 0.5, 0.35)
		}
	}
	return dc, nil
}

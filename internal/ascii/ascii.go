// Package ascii converts listing images into terminal ASCII art.
package ascii

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Contrast selects one of the fixed glyph ramps.
type Contrast string

const (
	ContrastLow    Contrast = "low"
	ContrastMedium Contrast = "medium"
	ContrastHigh   Contrast = "high"
)

// Ramps are ordered sparse to dense; brighter pixels pick denser
// glyphs. A longer ramp yields finer gradation; a single glyph
// degenerates to a silhouette.
var ramps = map[Contrast]string{
	ContrastLow:    " ░▒▓█",
	ContrastMedium: " .·░▒▓█",
	ContrastHigh:   " .·░▒▓█#@",
}

// Ramp returns the glyph ramp for a contrast level, defaulting to
// medium for unknown values.
func Ramp(c Contrast) string {
	if r, ok := ramps[c]; ok {
		return r
	}
	return ramps[ContrastMedium]
}

// NextContrast cycles low → medium → high → low, driving the rotation
// effect.
func NextContrast(c Contrast) Contrast {
	switch c {
	case ContrastLow:
		return ContrastMedium
	case ContrastMedium:
		return ContrastHigh
	default:
		return ContrastLow
	}
}

// Decode parses raw image bytes. jpeg, png, gif and webp decoders are
// registered.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Render scales img to targetWidth columns and maps pixel luminance
// onto ramp, brighter pixels picking denser glyphs. The height is
// halved relative to a square resize because terminal glyphs are
// roughly twice as tall as wide. Degenerate target dimensions yield an
// empty string.
func Render(img image.Image, targetWidth int, ramp string) string {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if targetWidth < 1 || srcW < 1 || srcH < 1 {
		return ""
	}

	targetHeight := targetWidth * srcH / srcW / 2
	if targetHeight < 1 {
		return ""
	}

	runes := []rune(ramp)
	if len(runes) == 0 {
		return ""
	}

	scaled := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)

	var b strings.Builder
	b.Grow(targetHeight * (targetWidth + 1))
	for y := 0; y < targetHeight; y++ {
		for x := 0; x < targetWidth; x++ {
			r, g, bl, _ := scaled.At(x, y).RGBA()
			// Unweighted channel mean, scaled back to 0..255.
			lum := (r>>8 + g>>8 + bl>>8) / 3
			idx := int(lum) * (len(runes) - 1) / 255
			b.WriteRune(runes[idx])
		}
		if y < targetHeight-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Placeholder draws an empty box frame for listings whose image cannot
// be rendered. Dimensions too small for a frame yield an empty string.
func Placeholder(width, height int) string {
	if width < 4 || height < 2 {
		return ""
	}

	top := strings.Repeat("─", width-2)
	middle := "│" + strings.Repeat(" ", width-2) + "│"

	lines := make([]string, 0, height)
	lines = append(lines, "┌"+top+"┐")
	for i := 0; i < height-2; i++ {
		lines = append(lines, middle)
	}
	lines = append(lines, "└"+top+"┘")
	return strings.Join(lines, "\n")
}

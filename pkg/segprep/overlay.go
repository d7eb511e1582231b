package segprep

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderLabelOverlay colours channel 0 of a label map through Palette and
// writes it to a JPEG file with a caption strip listing the classes present.
func RenderLabelOverlay(labels Array, title, outputPath string) error {
	img, err := renderLabelImage(labels, title)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create overlay file: %w", err)
	}

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		f.Close()
		return fmt.Errorf("encode overlay: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close overlay file: %w", err)
	}
	return nil
}

// RenderLabelOverlayBytes is RenderLabelOverlay returning the JPEG bytes.
func RenderLabelOverlayBytes(labels Array, title string) ([]byte, error) {
	img, err := renderLabelImage(labels, title)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderLabelImage creates the overlay image in memory.
func renderLabelImage(labels Array, title string) (*image.RGBA, error) {
	if err := labels.validate(); err != nil {
		return nil, fmt.Errorf("label map: %w", err)
	}

	// Caption strip below the map: title line and class line
	const captionH = 40
	const minW = 240
	imgW := max(labels.W, minW)
	totalH := labels.H + captionH

	img := image.NewRGBA(image.Rect(0, 0, imgW, totalH))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}

	palette := Palette()
	present := make(map[int]bool)
	for y := 0; y < labels.H; y++ {
		for x := 0; x < labels.W; x++ {
			idx := int(clampByte(labels.At(y, x, 0)))
			present[idx] = true
			img.SetRGBA(x, y, color.RGBA{palette[3*idx], palette[3*idx+1], palette[3*idx+2], 255})
		}
	}

	classes := make([]int, 0, len(present))
	for k := range present {
		classes = append(classes, k)
	}
	sort.Ints(classes)
	names := make([]string, len(classes))
	for i, k := range classes {
		names[i] = strconv.Itoa(k)
	}

	face := basicfont.Face7x13
	textColor := color.RGBA{220, 220, 220, 255}
	drawText(img, face, title, 6, labels.H+15, textColor)
	drawText(img, face, truncateText(face, "classes: "+strings.Join(names, " "), imgW-12), 6, labels.H+33, textColor)

	return img, nil
}

// truncateText shortens s with a trailing ellipsis until it fits in width pixels.
func truncateText(face font.Face, s string, width int) string {
	if font.MeasureString(face, s).Round() <= width {
		return s
	}
	for n := len(s) - 1; n > 0; n-- {
		t := s[:n] + "..."
		if font.MeasureString(face, t).Round() <= width {
			return t
		}
	}
	return ""
}

// drawText draws a string at (x, y) using the given font face.
func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}


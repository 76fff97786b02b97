package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// CropBottom keeps the bottom fraction of a PNG and scales it down to maxWidth when wider.
func CropBottom(pngData []byte, fraction float64, maxWidth int) ([]byte, error) {
	if fraction <= 0 || fraction > 1 {
		return nil, fmt.Errorf("crop fraction %v out of range (0,1]", fraction)
	}
	src, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	b := src.Bounds()
	top := b.Max.Y - int(float64(b.Dy())*fraction)
	region := image.Rect(b.Min.X, top, b.Max.X, b.Max.Y)

	var dst draw.Image
	if maxWidth > 0 && region.Dx() > maxWidth {
		h := region.Dy() * maxWidth / region.Dx()
		rgba := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
		draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), src, region, draw.Src, nil)
		dst = rgba
	} else {
		rgba := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
		draw.Copy(rgba, image.Point{}, src, region, draw.Src, nil)
		dst = rgba
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

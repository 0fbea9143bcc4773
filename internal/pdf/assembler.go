// Package pdf assembles user photos into a single PDF document.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/go-pdf/fpdf"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/models"
)

// Assembly errors. Handlers translate these into user-facing text.
var (
	// ErrEmptyInput indicates assembly was requested with no photos.
	ErrEmptyInput = errors.New("no photos to assemble")
	// ErrUnsupportedImage indicates an input that cannot be decoded.
	ErrUnsupportedImage = errors.New("unsupported image format")
)

const (
	// maxRasterWidth caps the embedded image width in pixels; wider photos
	// are downscaled before re-encoding.
	maxRasterWidth = 1280
	// pageMargin is the blank border around each placed image, in points.
	pageMargin = 24.0
	// watermarkAlpha is the opacity of the watermark text overlay.
	watermarkAlpha = 0.47
)

// Assemble lays out one page per photo, in input order, and returns the PDF
// bytes. It does not mutate its inputs; all buffers are scoped to the call.
// The context is checked between pages so a timeout bounds assembly latency.
func Assemble(ctx context.Context, photos [][]byte, settings models.Settings) ([]byte, error) {
	if len(photos) == 0 {
		return nil, ErrEmptyInput
	}

	size := pageSizeOf(settings.PageSize)
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           size,
	})
	doc.SetAutoPageBreak(false, 0)

	for i, raw := range photos {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("photo %d: %w", i+1, ErrUnsupportedImage)
		}

		encoded, pxW, pxH := reencode(img, settings.CompressionQuality)

		doc.AddPageFormat("P", size)
		x, y, w, h := placement(size, pxW, pxH)

		name := fmt.Sprintf("photo-%d", i+1)
		opts := fpdf.ImageOptions{ImageType: "JPG"}
		doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(encoded))
		doc.ImageOptions(name, x, y, w, h, false, opts, 0, "")

		if settings.WatermarkText != "" {
			drawWatermark(doc, size, settings.WatermarkText, settings.WatermarkPos)
		}
	}

	if doc.Err() {
		return nil, fmt.Errorf("pdf rendering: %w", doc.Error())
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return out.Bytes(), nil
}

// reencode flattens the image onto a white background, downscales anything
// wider than maxRasterWidth, and re-encodes as JPEG at the given quality.
func reencode(img image.Image, quality int) (data []byte, width, height int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxRasterWidth {
		h = h * maxRasterWidth / w
		if h < 1 {
			h = 1
		}
		w = maxRasterWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)

	var buf bytes.Buffer
	// Encoding RGBA never fails on a bytes.Buffer.
	_ = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality})
	return buf.Bytes(), w, h
}

// placement fits a pxW x pxH raster inside the page minus margins,
// preserving aspect ratio and centering the result.
func placement(size fpdf.SizeType, pxW, pxH int) (x, y, w, h float64) {
	availW := size.Wd - 2*pageMargin
	availH := size.Ht - 2*pageMargin

	scale := availW / float64(pxW)
	if s := availH / float64(pxH); s < scale {
		scale = s
	}

	w = float64(pxW) * scale
	h = float64(pxH) * scale
	x = (size.Wd - w) / 2
	y = (size.Ht - h) / 2
	return x, y, w, h
}

// drawWatermark overlays translucent text at the configured anchor. The same
// text and anchor are used on every page; Center is drawn rotated 45 degrees
// about the page center.
func drawWatermark(doc *fpdf.Fpdf, size fpdf.SizeType, text string, pos models.WatermarkPosition) {
	lines := strings.Split(text, "\n")

	fontSize := size.Wd / 20
	if fontSize < 14 {
		fontSize = 14
	}
	lineHeight := fontSize * 1.15
	margin := size.Wd * 0.03

	doc.SetFont("Helvetica", "B", fontSize)
	doc.SetTextColor(255, 255, 255)
	doc.SetAlpha(watermarkAlpha, "Normal")
	defer doc.SetAlpha(1.0, "Normal")

	blockH := float64(len(lines)-1) * lineHeight

	switch pos {
	case models.WatermarkTopLeft:
		y := margin + fontSize
		for _, line := range lines {
			doc.Text(margin, y, line)
			y += lineHeight
		}

	case models.WatermarkCenter:
		doc.TransformBegin()
		doc.TransformRotate(45, size.Wd/2, size.Ht/2)
		y := size.Ht/2 - blockH/2 + fontSize/3
		for _, line := range lines {
			doc.Text(size.Wd/2-doc.GetStringWidth(line)/2, y, line)
			y += lineHeight
		}
		doc.TransformEnd()

	default: // bottom right
		y := size.Ht - margin - blockH
		for _, line := range lines {
			doc.Text(size.Wd-margin-doc.GetStringWidth(line), y, line)
			y += lineHeight
		}
	}
}

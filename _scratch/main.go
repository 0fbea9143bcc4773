package main

import (
	"bytes"
	"compress/zlib"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"

	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/models"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/pdf"
)

func solidJPEG(c color.RGBA, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, nil)
	return buf.Bytes()
}

func main() {
	settings := models.DefaultSettings()
	settings.SetWatermark("DRAFT")
	settings.SetWatermarkPosition("br")
	photos := [][]byte{
		solidJPEG(color.RGBA{R: 128, A: 255}, 20, 20),
		solidJPEG(color.RGBA{B: 128, A: 255}, 20, 20),
	}
	out, err := pdf.Assemble(context.Background(), photos, settings)
	if err != nil {
		panic(err)
	}
	os.WriteFile("/tmp/out.pdf", out, 0644)
	rest := out
	n := 0
	for {
		i := bytes.Index(rest, []byte("stream"))
		if i == -1 {
			break
		}
		rest = rest[i+len("stream"):]
		rest = bytes.TrimLeft(rest, "\r\n")
		end := bytes.Index(rest, []byte("endstream"))
		if end == -1 {
			fmt.Println("no endstream!")
			break
		}
		n++
		if zr, err := zlib.NewReader(bytes.NewReader(rest[:end])); err == nil {
			plain, err2 := io.ReadAll(zr)
			fmt.Printf("stream %d: zlib ok, readall err=%v, %d bytes, DRAFT count=%d\n", n, err2, len(plain), bytes.Count(plain, []byte("(DRAFT)")))
			zr.Close()
		} else {
			fmt.Printf("stream %d: not zlib (%v), %d raw bytes\n", n, err, end)
		}
		rest = rest[end:]
	}
}

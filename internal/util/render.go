package util

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// RenderPDFPage renders page n (0-based) of the in-memory PDF to PNG bytes.
func RenderPDFPage(data []byte, n int) ([]byte, int, error) {
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("empty PDF payload")
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if n < 0 || n >= pages {
		return nil, pages, fmt.Errorf("page %d out of range (document has %d pages)", n+1, pages)
	}

	img, err := doc.Image(n)
	if err != nil {
		return nil, pages, fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
	}

	out, err := encodePNG(img)
	if err != nil {
		return nil, pages, fmt.Errorf("page %d: %w", n+1, err)
	}
	return out, pages, nil
}

func encodePNG(img interface{}) ([]byte, error) {
	i, ok := img.(image.Image)
	if !ok {
		return nil, fmt.Errorf("invalid image type: %T", img)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, i); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

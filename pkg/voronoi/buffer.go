package voronoi

import (
	"bytes"
	"image"
)

// BytesPerPixel is the size of one pixel in a [Buffer].
const BytesPerPixel = 4

// Buffer is a row-major RGBA pixel grid.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewBuffer allocates a zeroed buffer. Dimensions must be positive.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// Stride is the number of bytes in one row.
func (b *Buffer) Stride() int { return b.Width * BytesPerPixel }

// Row returns the bytes of row y. The slice aliases the buffer.
func (b *Buffer) Row(y int) []byte {
	stride := b.Stride()
	return b.Pix[y*stride : (y+1)*stride : (y+1)*stride]
}

// At returns the color of pixel (x, y).
func (b *Buffer) At(x, y int) Color {
	i := y*b.Stride() + x*BytesPerPixel
	return Color{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]}
}

// Alpha returns the alpha byte of pixel (x, y).
func (b *Buffer) Alpha(x, y int) uint8 {
	return b.Pix[y*b.Stride()+x*BytesPerPixel+3]
}

// Equal reports whether both buffers have the same dimensions and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Width == other.Width && b.Height == other.Height && bytes.Equal(b.Pix, other.Pix)
}

// Image wraps the buffer as an *image.RGBA sharing the same pixels.
func (b *Buffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Stride(),
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

func putPixel(row []byte, x int, c Color) {
	i := x * BytesPerPixel
	row[i] = c.R
	row[i+1] = c.G
	row[i+2] = c.B
	row[i+3] = 255
}

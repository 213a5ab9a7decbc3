package photonmap

import (
	"bufio"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// RadianceBuffer is a row-major RGB float image; row 0 is the top of the picture.
type RadianceBuffer struct {
	Width, Height int
	Pix           []Real // len = Width*Height*3
}

func NewRadianceBuffer(w, h int) *RadianceBuffer {
	return &RadianceBuffer{Width: w, Height: h, Pix: make([]Real, w*h*3)}
}

func (b *RadianceBuffer) idx(i, j int) int { return (j*b.Width + i) * 3 }

func (b *RadianceBuffer) At(i, j int) RGB {
	k := b.idx(i, j)
	return RGB{b.Pix[k+ChR], b.Pix[k+ChG], b.Pix[k+ChB]}
}

func (b *RadianceBuffer) Set(i, j int, c RGB) {
	k := b.idx(i, j)
	b.Pix[k+ChR], b.Pix[k+ChG], b.Pix[k+ChB] = c.R, c.G, c.B
}

func (b *RadianceBuffer) check() error {
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("negative dimensions: %dx%d", b.Width, b.Height)
	}
	if exp := int64(b.Width) * int64(b.Height) * 3; int64(len(b.Pix)) != exp {
		return fmt.Errorf("Pix length mismatch: got %d, expected %d (W*H*3)", len(b.Pix), exp)
	}
	return nil
}

// SaveRawRGB64 writes int32 width, int32 height, then W*H*3 float64, all little-endian.
func (b *RadianceBuffer) SaveRawRGB64(path string) error {
	if err := b.check(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, [2]int32{int32(b.Width), int32(b.Height)}); err != nil {
		return err
	}
	if len(b.Pix) > 0 {
		if err := binary.Write(w, binary.LittleEndian, b.Pix); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func LoadRawRGB64(path string) (*RadianceBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return readRawRGB64(bufio.NewReader(f), fi.Size()-rawHeaderBytes)
}

const (
	rawHeaderBytes = 8
	// maxRawValues caps the float64 count a header may announce (64k×64k RGB).
	maxRawValues = uint64(3) << 32
)

// readRawRGB64 decodes a raw dump; bodyBytes is the size left after the header, or < 0 when unknown.
func readRawRGB64(r io.Reader, bodyBytes int64) (*RadianceBuffer, error) {
	var hdr [2]int32
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRawHeader, err)
	}
	if hdr[0] < 0 || hdr[1] < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadRawHeader, hdr[0], hdr[1])
	}
	// int32 dimensions cannot overflow uint64 here
	n := uint64(hdr[0]) * uint64(hdr[1]) * 3
	if n > maxRawValues {
		return nil, fmt.Errorf("%w: %dx%d is too large", ErrBadRawHeader, hdr[0], hdr[1])
	}
	if bodyBytes >= 0 && uint64(bodyBytes) != n*8 {
		return nil, fmt.Errorf("%w: %dx%d needs %d body bytes, file has %d", ErrBadRawHeader, hdr[0], hdr[1], n*8, bodyBytes)
	}
	b := NewRadianceBuffer(int(hdr[0]), int(hdr[1]))
	if len(b.Pix) > 0 {
		if err := binary.Read(r, binary.LittleEndian, b.Pix); err != nil {
			return nil, fmt.Errorf("%w: truncated body: %v", ErrBadRawHeader, err)
		}
	}
	return b, nil
}

// SaveCSV writes one "pixel,r,g,b" row per pixel in buffer order.
func (b *RadianceBuffer) SaveCSV(path string) error {
	if err := b.check(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(bufio.NewWriter(f))
	if err := w.Write([]string{"pixel", "r", "g", "b"}); err != nil {
		return err
	}
	ff := func(x Real) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	for p := 0; p < b.Width*b.Height; p++ {
		k := p * 3
		if err := w.Write([]string{strconv.Itoa(p), ff(b.Pix[k]), ff(b.Pix[k+1]), ff(b.Pix[k+2])}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// AverageBuffers returns the per-channel mean of equally sized buffers.
func AverageBuffers(bufs []*RadianceBuffer) (*RadianceBuffer, error) {
	if len(bufs) == 0 {
		return nil, fmt.Errorf("%w: nothing to average", ErrDimensionMismatch)
	}
	w, h := bufs[0].Width, bufs[0].Height
	out := NewRadianceBuffer(w, h)
	for i, b := range bufs {
		if b.Width != w || b.Height != h || len(b.Pix) != len(out.Pix) {
			return nil, fmt.Errorf("%w: buffer #%d is %dx%d, expected %dx%d", ErrDimensionMismatch, i, b.Width, b.Height, w, h)
		}
		for k, v := range b.Pix {
			out.Pix[k] += v
		}
	}
	inv := 1 / Real(len(bufs))
	for k := range out.Pix {
		out.Pix[k] *= inv
	}
	return out, nil
}

package photonmap

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

// toU16 maps a [0,1] value to 16 bits after gamma correction.
func toU16(v, gamma Real) uint16 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		v = 1
	}
	if gamma != 1 {
		v = math.Pow(v, 1/gamma)
	}
	return uint16(math.Round(v * 65535))
}

// SavePNG16 writes a tone-mapped buffer as a lossless 16-bit PNG.
func SavePNG16(buf *RadianceBuffer, path string, gamma Real, log Logger) error {
	if err := buf.check(); err != nil {
		return err
	}
	W, H := buf.Width, buf.Height
	img := image.NewNRGBA64(image.Rect(0, 0, W, H))
	prog := newProgress(log, "PNG", H)
	const pxBytes = 8 // 4 channels * 2 bytes/channel
	for j := 0; j < H; j++ {
		rowOff := j * img.Stride
		for i := 0; i < W; i++ {
			k := buf.idx(i, j)
			p := rowOff + i*pxBytes
			// NRGBA64 stores big-endian uint16 per channel: R, G, B, A.
			for c := 0; c < 3; c++ {
				v := toU16(buf.Pix[k+c], gamma)
				img.Pix[p+2*c] = uint8(v >> 8)
				img.Pix[p+2*c+1] = uint8(v)
			}
			img.Pix[p+6] = 0xFF
			img.Pix[p+7] = 0xFF
		}
		prog.add(1)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

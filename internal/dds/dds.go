package dds

import (
	"encoding/binary"
	"fmt"
	"image"
)

// DDS container constants, legacy header without the DX10 extension.
const (
	magic      = 0x20534444 // "DDS "
	headerSize = 124

	flagCaps        = 0x1
	flagHeight      = 0x2
	flagWidth       = 0x4
	flagPitch       = 0x8
	flagPixelFormat = 0x1000
	flagLinearSize  = 0x80000

	capsTexture = 0x1000

	pixelFormatSize = 32
	pfFourCC        = 0x4
	pfRGB           = 0x40
	pfAlphaPixels   = 0x1

	fourCCDXT1 = 0x31545844 // "DXT1"
)

// Format selects the pixel encoding written into the container.
type Format int

const (
	// FormatBC1 block-compresses to 4 bits per pixel, the engine's
	// preferred on-disk format.
	FormatBC1 Format = iota
	// FormatRGBA8 stores uncompressed 32-bit pixels for maximum quality.
	FormatRGBA8
)

// Encode serializes img as a DDS texture without mipmaps. BC1 requires
// dimensions divisible by four.
func Encode(img *image.NRGBA, format Format) ([]byte, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("cannot encode empty %dx%d image", w, h)
	}
	switch format {
	case FormatBC1:
		if w%4 != 0 || h%4 != 0 {
			return nil, fmt.Errorf("BC1 needs dimensions divisible by 4, got %dx%d", w, h)
		}
		return withHeader(w, h, format, encodeBC1(img)), nil
	case FormatRGBA8:
		return withHeader(w, h, format, encodeRGBA8(img)), nil
	default:
		return nil, fmt.Errorf("unknown texture format %d", format)
	}
}

// withHeader prepends the 128-byte container header to the pixel payload.
// Field offsets follow the DDS_HEADER layout: height at 12, width at 16,
// pitch or linear size at 20, pixel format block at 76, caps at 108.
func withHeader(w, h int, format Format, payload []byte) []byte {
	out := make([]byte, 128+len(payload))
	le := binary.LittleEndian

	le.PutUint32(out[0:], magic)
	le.PutUint32(out[4:], headerSize)

	flags := uint32(flagCaps | flagHeight | flagWidth | flagPixelFormat)
	if format == FormatBC1 {
		flags |= flagLinearSize
	} else {
		flags |= flagPitch
	}
	le.PutUint32(out[8:], flags)
	le.PutUint32(out[12:], uint32(h))
	le.PutUint32(out[16:], uint32(w))
	if format == FormatBC1 {
		le.PutUint32(out[20:], uint32(len(payload)))
	} else {
		le.PutUint32(out[20:], uint32(w*4))
	}
	le.PutUint32(out[28:], 1) // single level, mipmaps stay disabled

	le.PutUint32(out[76:], pixelFormatSize)
	if format == FormatBC1 {
		le.PutUint32(out[80:], pfFourCC)
		le.PutUint32(out[84:], fourCCDXT1)
	} else {
		le.PutUint32(out[80:], pfRGB|pfAlphaPixels)
		le.PutUint32(out[88:], 32)
		le.PutUint32(out[92:], 0x00FF0000)
		le.PutUint32(out[96:], 0x0000FF00)
		le.PutUint32(out[100:], 0x000000FF)
		le.PutUint32(out[104:], 0xFF000000)
	}
	le.PutUint32(out[108:], capsTexture)

	copy(out[128:], payload)
	return out
}

// encodeRGBA8 emits pixels in the BGRA byte order the A8R8G8B8 masks
// declare.
func encodeRGBA8(img *image.NRGBA) []byte {
	bounds := img.Bounds()
	out := make([]byte, bounds.Dx()*bounds.Dy()*4)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			off := img.PixOffset(x, y)
			out[i] = img.Pix[off+2]
			out[i+1] = img.Pix[off+1]
			out[i+2] = img.Pix[off]
			out[i+3] = img.Pix[off+3]
			i += 4
		}
	}
	return out
}

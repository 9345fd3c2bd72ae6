package dds_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"autovideo/internal/dds"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestEncodeRGBA8WritesLegacyHeader(t *testing.T) {
	img := solidImage(8, 8, color.NRGBA{R: 255, G: 128, B: 64, A: 255})
	out, err := dds.Encode(img, dds.FormatRGBA8)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) != 128+8*8*4 {
		t.Fatalf("output length = %d", len(out))
	}
	if !bytes.Equal(out[0:4], []byte("DDS ")) {
		t.Fatalf("bad magic %q", out[0:4])
	}
	le := binary.LittleEndian
	if got := le.Uint32(out[12:]); got != 8 {
		t.Fatalf("height = %d", got)
	}
	if got := le.Uint32(out[16:]); got != 8 {
		t.Fatalf("width = %d", got)
	}
	if got := le.Uint32(out[20:]); got != 32 {
		t.Fatalf("pitch = %d, want 32", got)
	}
	if got := le.Uint32(out[92:]); got != 0x00FF0000 {
		t.Fatalf("red mask = %#x", got)
	}
	// Pixels land in BGRA order.
	if out[128] != 64 || out[129] != 128 || out[130] != 255 || out[131] != 255 {
		t.Fatalf("first pixel bytes = %v", out[128:132])
	}
}

func TestEncodeBC1SolidBlock(t *testing.T) {
	img := solidImage(4, 4, color.NRGBA{R: 255, A: 255})
	out, err := dds.Encode(img, dds.FormatBC1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) != 128+8 {
		t.Fatalf("output length = %d", len(out))
	}
	le := binary.LittleEndian
	if got := le.Uint32(out[84:]); got != 0x31545844 {
		t.Fatalf("fourcc = %#x, want DXT1", got)
	}
	const red565 = 0xF800
	if got := le.Uint16(out[128:]); got != red565 {
		t.Fatalf("endpoint 0 = %#x", got)
	}
	if got := le.Uint16(out[130:]); got != red565 {
		t.Fatalf("endpoint 1 = %#x", got)
	}
	if got := le.Uint32(out[132:]); got != 0 {
		t.Fatalf("indices = %#x, want 0", got)
	}
}

func TestEncodeBC1TwoColorBlock(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if y < 2 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{A: 255})
			}
		}
	}
	out, err := dds.Encode(img, dds.FormatBC1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	le := binary.LittleEndian
	if got := le.Uint16(out[128:]); got != 0xFFFF {
		t.Fatalf("endpoint 0 = %#x, want white", got)
	}
	if got := le.Uint16(out[130:]); got != 0 {
		t.Fatalf("endpoint 1 = %#x, want black", got)
	}
	// Top eight pixels select endpoint 0, bottom eight endpoint 1.
	if got := le.Uint32(out[132:]); got != 0x55550000 {
		t.Fatalf("indices = %#x, want 0x55550000", got)
	}
}

func TestEncodeBC1RejectsUnalignedDimensions(t *testing.T) {
	img := solidImage(6, 6, color.NRGBA{A: 255})
	if _, err := dds.Encode(img, dds.FormatBC1); err == nil {
		t.Fatal("expected error for dimensions not divisible by 4")
	}
}

func TestEncodeRejectsEmptyImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	if _, err := dds.Encode(img, dds.FormatRGBA8); err == nil {
		t.Fatal("expected error for empty image")
	}
}

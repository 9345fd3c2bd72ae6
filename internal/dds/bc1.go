package dds

import (
	"encoding/binary"
	"image"
)

// encodeBC1 block-compresses img at 8 bytes per 4x4 pixel block. Endpoints
// come from the per-block color bounding box, which keeps the encoder fast
// and deterministic.
func encodeBC1(img *image.NRGBA) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]byte, w/4*h/4*8)

	var block [16][3]uint8
	bi := 0
	for by := 0; by < h; by += 4 {
		for bx := 0; bx < w; bx += 4 {
			for py := 0; py < 4; py++ {
				for px := 0; px < 4; px++ {
					off := img.PixOffset(bounds.Min.X+bx+px, bounds.Min.Y+by+py)
					p := &block[py*4+px]
					p[0] = img.Pix[off]
					p[1] = img.Pix[off+1]
					p[2] = img.Pix[off+2]
				}
			}
			encodeBlock(out[bi:bi+8], &block)
			bi += 8
		}
	}
	return out
}

func encodeBlock(dst []byte, block *[16][3]uint8) {
	var lo, hi [3]int
	for c := 0; c < 3; c++ {
		lo[c], hi[c] = 255, 0
	}
	for _, p := range block {
		for c := 0; c < 3; c++ {
			v := int(p[c])
			if v < lo[c] {
				lo[c] = v
			}
			if v > hi[c] {
				hi[c] = v
			}
		}
	}

	// Componentwise max packs to the numerically larger endpoint, which
	// keeps the block in four-color mode.
	c0 := pack565(hi[0], hi[1], hi[2])
	c1 := pack565(lo[0], lo[1], lo[2])
	binary.LittleEndian.PutUint16(dst[0:], c0)
	binary.LittleEndian.PutUint16(dst[2:], c1)
	if c0 == c1 {
		// Flat block: index 0 selects the endpoint color in either mode.
		binary.LittleEndian.PutUint32(dst[4:], 0)
		return
	}

	var palette [4][3]int
	palette[0] = unpack565(c0)
	palette[1] = unpack565(c1)
	for c := 0; c < 3; c++ {
		palette[2][c] = (2*palette[0][c] + palette[1][c]) / 3
		palette[3][c] = (palette[0][c] + 2*palette[1][c]) / 3
	}

	var bits uint32
	for i, p := range block {
		best, bestDist := 0, 1<<30
		for pi := range palette {
			d := 0
			for c := 0; c < 3; c++ {
				diff := int(p[c]) - palette[pi][c]
				d += diff * diff
			}
			if d < bestDist {
				best, bestDist = pi, d
			}
		}
		bits |= uint32(best) << (2 * i)
	}
	binary.LittleEndian.PutUint32(dst[4:], bits)
}

func pack565(r, g, b int) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

func unpack565(c uint16) [3]int {
	r := int(c>>11) & 0x1F
	g := int(c>>5) & 0x3F
	b := int(c) & 0x1F
	return [3]int{r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2}
}

package binpatch

import (
	"bytes"
	"encoding/binary"
	"math"

	"autovideo/internal/identifier"
)

// ReplaceAll overwrites every non-overlapping occurrence of pattern in buf
// with replacement, X-padding the replacement on the left to the pattern's
// width. The scan resumes after each consumed match. It returns how many
// occurrences were rewritten; zero matches is not an error, since templates
// differ in which placeholders they contain.
func ReplaceAll(buf []byte, pattern, replacement string) (int, error) {
	padded, err := identifier.Pad(replacement, 'X', len(pattern), true)
	if err != nil {
		return 0, err
	}
	patternBytes := []byte(pattern)
	paddedBytes := []byte(padded)

	replaced := 0
	position := 0
	for {
		start := bytes.Index(buf[position:], patternBytes)
		if start < 0 {
			return replaced, nil
		}
		start += position
		position = start + len(patternBytes)
		copy(buf[start:position], paddedBytes)
		replaced++
	}
}

// ReplaceFirst overwrites at most the first occurrence of pattern in buf
// with the X-padded replacement. It returns 1 when a match was rewritten
// and 0 when the pattern is absent.
func ReplaceFirst(buf []byte, pattern, replacement string) (int, error) {
	padded, err := identifier.Pad(replacement, 'X', len(pattern), true)
	if err != nil {
		return 0, err
	}
	start := bytes.Index(buf, []byte(pattern))
	if start < 0 {
		return 0, nil
	}
	copy(buf[start:start+len(pattern)], padded)
	return 1, nil
}

// Count reports how many non-overlapping occurrences of pattern buf holds.
func Count(buf []byte, pattern string) int {
	patternBytes := []byte(pattern)
	count := 0
	position := 0
	for {
		start := bytes.Index(buf[position:], patternBytes)
		if start < 0 {
			return count
		}
		position += start + len(patternBytes)
		count++
	}
}

// PatchFloat32 scans every byte offset of buf for a little-endian 32-bit
// float whose bit pattern exactly equals target and overwrites it with
// replacement. Matching is bit-exact rather than tolerance-based: the
// templates reserve sentinel magic numbers implausible as real timing
// data, so nearby values must never be touched. Returns the number of
// occurrences patched.
func PatchFloat32(buf []byte, target, replacement float32) int {
	targetBits := math.Float32bits(target)
	replacementBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(replacementBytes, math.Float32bits(replacement))

	patched := 0
	for i := 0; i+4 <= len(buf); i++ {
		if binary.LittleEndian.Uint32(buf[i:i+4]) == targetBits {
			copy(buf[i:i+4], replacementBytes)
			patched++
		}
	}
	return patched
}

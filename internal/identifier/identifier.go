package identifier

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// MaxLength is the longest raw name the game records can carry. Every
// padded encoding is exactly this many bytes.
const MaxLength = 10

// Pad extends name with fill characters until it is length bytes long.
// Leading selects the side the fill goes on. Names longer than length are
// rejected.
func Pad(name string, fill byte, length int, leading bool) (string, error) {
	if len(name) > length {
		return "", fmt.Errorf("%s is too long, should be at most %d characters", name, length)
	}
	if len(name) == length {
		return name, nil
	}
	padding := strings.Repeat(string(fill), length-len(name))
	if leading {
		return padding + name, nil
	}
	return name + padding, nil
}

// Identity holds the fixed-width encodings of one mod or video name.
type Identity struct {
	// Name is the raw name as the user supplied it.
	Name string
	// Token is the X-padded-left form used as an opaque slug in records,
	// texture paths, and file names.
	Token string
	// LeadingSpaced renders as right-aligned display text.
	LeadingSpaced string
	// TrailingSpaced renders as left-aligned display text.
	TrailingSpaced string
}

// New derives all padded encodings for a name. It fails when the name
// exceeds MaxLength.
func New(name string) (Identity, error) {
	token, err := Pad(name, 'X', MaxLength, true)
	if err != nil {
		return Identity{}, err
	}
	leading, err := Pad(name, ' ', MaxLength, true)
	if err != nil {
		return Identity{}, err
	}
	trailing, err := Pad(name, ' ', MaxLength, false)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		Name:           name,
		Token:          token,
		LeadingSpaced:  leading,
		TrailingSpaced: trailing,
	}, nil
}

// FromPath derives a video name and frame rate from a source file path.
// A trailing numeric segment in the stem selects a per-video frame rate,
// so "intro.30.mp4" plays at 30 fps under the name "intro". Spaces become
// underscores. When shorten is set, names longer than MaxLength are cut
// instead of failing validation later.
func FromPath(path string, defaultRate int, shorten bool) (string, int) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rate := defaultRate

	if parts := strings.Split(stem, "."); len(parts) > 1 {
		if fps, err := strconv.Atoi(parts[len(parts)-1]); err == nil && fps > 0 {
			rate = fps
			stem = strings.Join(parts[:len(parts)-1], "_")
		}
	}
	if shorten && len(stem) > MaxLength {
		stem = stem[:MaxLength]
	}
	return strings.ReplaceAll(stem, " ", "_"), rate
}

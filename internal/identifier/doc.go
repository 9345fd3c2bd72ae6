// Package identifier encodes mod and video names into the fixed-width
// token forms the binary templates reserve space for.
//
// Names are at most ten characters. Each name yields three ten-byte
// encodings: an X-padded slug for opaque tokens, and two space-padded
// forms for in-game display text. The package also derives names and
// per-video frame rates from source file paths.
package identifier

// Package binpatch mutates binary template buffers in place without
// parsing them.
//
// Templates embed two kinds of reserved fields: fixed-width ASCII
// placeholder tokens, and 32-bit float sentinels whose bit patterns are
// implausible as real data. Both are located by raw byte scanning. This
// works because the templates are constructed so the placeholders cannot
// occur anywhere else, which lets the tool avoid maintaining a schema for
// two undocumented binary formats.
package binpatch

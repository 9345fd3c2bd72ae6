// Package dds writes texture atlases in the DDS container format the game
// engine loads.
//
// Only the two encodings the converter emits are supported: BC1 block
// compression for the standard quality setting and uncompressed 32-bit
// pixels for the high one. Headers use the legacy layout so the engine's
// D3D9-era loader accepts them, and mipmaps are never generated because
// atlas frames are sampled at exact grid coordinates.
package dds

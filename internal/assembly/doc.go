// Package assembly orchestrates one conversion batch end to end.
//
// A batch turns a set of source videos into game-ready assets for one mod:
// texture atlases and audio tracks (via the frame encoder), patched mesh
// files per display surface, and either mutated plugin files or an editor
// script. The assembler owns the batch-level policy: input collection and
// validation, the over-capacity confirmation gate, the plugin buffers that
// accumulate record slots across videos, the output lock, and the
// conversion ledger.
//
// Videos are processed one at a time and the first error aborts the batch.
// Mesh and texture files already written for earlier videos are kept;
// plugin files are only written after every video succeeded.
package assembly

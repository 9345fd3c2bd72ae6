// Package template owns the bundled plugin and mesh template buffers and
// the placeholder layout of each template kind.
//
// Templates are opaque binaries, never parsed. Each one reserves
// fixed-width placeholder tokens and sentinel floats at authoring time,
// and this package knows which tokens a template kind contains, what each
// one means, and whether it is consumed per video or stamped globally.
// Plugin buffers accumulate one video per call across a batch; mesh
// buffers are loaded fresh per video, stamped, and written out.
package template

// Package scriptgen renders xEdit scripts for batches that bypass the
// plugin templates.
//
// The bundled plugin templates reserve ten record slots. Script mode sidesteps
// that cap: instead of mutating plugin buffers, the converter emits an Object
// Pascal script that, run inside xEdit with the target plugin loaded,
// appends one sound + activator record set per video. The records reference
// the mesh and audio assets by the same fixed-width identifier tokens the
// converter stamps into them, so the script output and the asset output of
// one run always agree.
package scriptgen

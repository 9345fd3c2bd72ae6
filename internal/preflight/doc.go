// Package preflight provides readiness checks for the filesystem paths and
// external tools a conversion run depends on.
//
// These checks run in two contexts:
//   - The convert command calls RunAll before touching any source video,
//     so a missing directory or broken history database fails fast.
//   - The CLI "autovideo status" command uses the individual check
//     functions to display environment health.
//
// Each check is gated by its config toggle -- disabled features are skipped.
package preflight

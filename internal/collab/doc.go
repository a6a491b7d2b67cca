// Package collab implements the external collaborators a run drives: the
// per-part generator programs, the schema validator, the GFF download, the
// submission endpoint, and the distribution area.
//
// Every collaborator reports failure as an error; deciding whether that
// failure ends the run is the caller's job (see package policy). Nothing in
// this package retries.
//
// Filesystem access goes through an afero.Fs so tests can run against an
// in-memory filesystem, and process execution goes through
// [CommandExecutor] so tests can record invocations instead of spawning them.
package collab

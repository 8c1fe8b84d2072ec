// Package sampling is the boundary used by samplers and minimizers that
// evaluate a model many times. The registry is single-threaded, so the
// package keeps its own identity-keyed ParameterCache and offers a
// quick-set evaluation path that skips the script, the undo stack and
// constraint validation.
package sampling

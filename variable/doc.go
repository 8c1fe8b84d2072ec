// Package variable provides the constrained value holders of a model.
//
// A Descriptor carries a typed scalar (bool, int, float or string) together
// with its metadata. A Parameter is a float Descriptor that can be fitted: it
// has bounds, an uncertainty, a fixed flag and three ordered tiers of
// constraints (user, physical, builtin) that every new value passes through.
// The last constraint that matches decides the stored value, and the builtin
// tier always contains the lower and upper bound checks, so a stored value
// never leaves [Min, Max].
//
// Observed setters record script statements and push undo commands through
// the registry the holder was built with. Raw accessors bypass both.
package variable

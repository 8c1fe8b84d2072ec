// Package model composes descriptors and parameters into named objects and
// ordered collections that form a model tree. Every object is registered in
// the registry's graph with edges from parent to child, so parameter paths
// can be recovered from the graph alone.
package model

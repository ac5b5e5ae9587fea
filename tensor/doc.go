// Package tensor provides the host-side value model for compilation
// signatures: data types, static shapes, dense host tensors, and
// possibly-absent resource-variable snapshots.
package tensor

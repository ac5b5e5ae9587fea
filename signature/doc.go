// Package signature builds and compares the composite keys that
// identify compiled computations.
//
// A Signature captures the callable's name, the ordered (data type,
// shape) pair of every runtime argument, and the concrete values of
// the compile-time constant argument prefix. Two calls share a
// compiled artifact exactly when their signatures are equal; Hash is
// consistent with Equal so signatures can key a hashed container.
package signature

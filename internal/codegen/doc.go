// Package codegen renders a compiled Vector as a Kotlin source file that
// defines a lazily built Compose ImageVector.
//
// The generated property memoizes its value in a private backing property:
// the first access builds the vector, later accesses return the cached
// value. Output is a pure function of the icon identity, the Vector and the
// Options, byte for byte.
package codegen

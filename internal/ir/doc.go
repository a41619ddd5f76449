// Package ir provides the intermediate representation of a parsed vector drawable.
//
// This package contains type definitions and small pure helpers only. All other
// internal packages import ir; ir imports nothing internal. The parser builds
// these values and the generator consumes them.
//
// Key design constraints:
//   - VectorNode and PathNode are sealed interfaces; only this package implements them
//   - Every PathNode carries exactly Command().Arity() operands
//   - IR values live for one conversion call and are never persisted
//   - All JSON tags use snake_case
package ir

// Package source acquires icon XML and turns it into ir.Icon records.
//
// Reading is the one blocking step of a conversion: a Provider yields the
// text of a named source and honours context cancellation. Everything after
// that works on the materialized string.
package source

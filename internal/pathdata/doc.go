// Package pathdata parses the compact path-data language used by the
// android:pathData attribute of vector drawables.
//
// The grammar is the SVG path grammar with two quirks that matter for real
// icon sets: numbers may be packed without separators whenever the boundary
// is unambiguous ("1.5.5" is 1.5 followed by .5, "1-2" is 1 followed by -2),
// and the two flag operands of an arc are single digits that may be packed
// against their neighbours ("a1 1 0 011 1").
//
// A command letter followed by N times its arity in operands expands into N
// nodes of that command, except that the pairs following the first pair of a
// moveTo are lineTo nodes.
//
// Parse and Format are pure and safe for concurrent use.
package pathdata

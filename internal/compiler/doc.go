// Package compiler turns vector drawable XML into the IR.
//
// ParseVector walks the document with a pull cursor. Only four elements are
// meaningful: the <vector> root, <group>, <path> and <clip-path>, which is
// recognised and skipped. Grouping is single level: a <group> start tag
// opens a new group at the root, and every following <path> joins it until
// the next <group> opens, regardless of where the group's end tag falls.
//
// Path data is delegated to package pathdata and its *pathdata.SyntaxError
// is returned as is. Structural problems are reported as *StructuralError
// and a path without android:pathData as *MissingAttributeError. On any
// error no IR is returned.
package compiler

// Package imposition computes the page ordering used to print a linear
// document as a hand-bound signature booklet.
//
// # Overview
//
// Saddle-stitch binding folds groups of sheets ("signatures") in half and
// nests them, so the reading order of the bound book differs from the order
// pages are printed on paper. This package turns an ordered page sequence
// into printable sheet sides: it inserts blank flyleaf pages, pads the
// sequence to a multiple of four, splits it into signatures, and maps each
// signature onto front/back sheet faces using a fixed folio table.
//
// # Pipeline
//
// The canonical flow is:
//
//	ordered := imposition.BuildOrderedPages(pages, flyleafSets)
//	sigs, err := imposition.SplitSignatures(ordered, sheets)
//	sides, err := imposition.ImposeSignatures(sigs, duplexRotate)
//
// Every function is a pure, deterministic computation over its inputs.
// Nothing blocks, retries, or holds state, so concurrent calls are trivially
// safe.
//
// # Page tokens
//
// Pages are referenced by [PageRef], a tagged value that is either a
// zero-based index into the source document or the distinguished blank
// sentinel created by [Blank]. The sentinel is disjoint from every index, so
// a real page can never collide with it.
//
// # Folio mapping
//
// For each sheet of a signature the four participating tokens form a quartet
// (left inner, right outer, left outer, right inner) read by a nested
// indexing rule from both ends of the signature. The front face takes
// quartet positions (3,2) and the back face (1,4), or (4,1) for printers
// that rotate the back image 180° while duplexing. The table mirrors the
// folio sheet-numbering convention used by booklet imposition tools and is
// deliberately not derived; it is validated by worked examples in the tests.
//
// # Errors
//
// All malformed inputs (negative flyleaf counts, non-positive signature
// lengths, sequences not padded to a multiple of four) fail immediately with
// an INVALID_INPUT error. There is no recovery path; the caller must fix the
// input and retry.
package imposition

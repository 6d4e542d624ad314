// Package textutil provides the small text conventions shared across the
// catalog: path cleaning, tag parsing, and tag display formatting.
//
// Paths entered by hand (or pasted from a file manager) routinely arrive
// wrapped in quotes and padded with whitespace; CleanPath strips exactly one
// pair of wrapping quotes so quote characters inside the path survive. Tags
// are free-form labels separated by commas or whitespace; ParseTags
// normalizes them into a de-duplicated list preserving first-seen order.
package textutil

// Package pipeline orchestrates the three-stage annotation run.
//
// A run reads one newline-delimited JSON input file and writes three
// artifacts to the output directory: a keyword-annotated file, a
// tag-annotated file, and a category-annotated file. The keyword stage
// completes fully before either sibling stage starts; the tag and category
// stages both consume the keyword artifact independently.
//
// Failure policy: setup problems (missing input, unreachable model host)
// abort the run before any stage starts. Once a stage is running, model
// failures are recovered per record and never abort anything.
package pipeline

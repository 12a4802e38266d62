// Package vocab holds the controlled tag vocabulary and the normalization
// rules applied to model-generated tags.
//
// The vocabulary is advisory rather than exhaustive: it seeds the tagging
// prompt and anchors the set of allowed prefixes, but new values under a
// known prefix are accepted. Normalization repairs the common ways small
// models mangle the prefix/value shape before tags reach an output artifact.
package vocab

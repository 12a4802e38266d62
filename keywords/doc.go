// Package keywords implements a corpus-free statistical phrase extractor.
//
// The extractor ranks candidate phrases of a single document by lightweight
// statistical features (term frequency, first position, casing, context
// dispersion) without any trained model or external corpus. Lower scores
// rank better; callers receive the top-K phrases in rank order. Extraction
// is deterministic: the same text always yields the same phrase list.
package keywords

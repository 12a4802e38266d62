// Copyright 2025 Redfin Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package keywords

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const (
	// DefaultTopK is the default maximum number of keywords per record.
	DefaultTopK = 5

	// maxPhraseTokens bounds candidate phrases to trigrams.
	maxPhraseTokens = 3
)

// Candidate is a ranked phrase. Score is only meaningful relative to other
// candidates of the same document; lower ranks better.
type Candidate struct {
	Phrase string
	Score  float64
}

// Extractor ranks phrases of a single document. It is stateless per call
// and safe for concurrent use.
type Extractor struct {
	topK int
	stop map[string]struct{}
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTopK sets the default keyword count for Keywords.
func WithTopK(k int) Option {
	return func(e *Extractor) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithStopwords replaces the built-in stopword list.
func WithStopwords(words []string) Option {
	return func(e *Extractor) {
		e.stop = make(map[string]struct{}, len(words))
		for _, w := range words {
			e.stop[strings.ToLower(w)] = struct{}{}
		}
	}
}

// NewExtractor creates an extractor with the built-in English stopword list
// and a default top-K of 5.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		topK: DefaultTopK,
		stop: defaultStopwords(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Keywords returns the top-K phrases of text, best first. Empty or
// whitespace-only text yields an empty list without running the ranker.
func (e *Extractor) Keywords(text string) []string {
	candidates := e.Extract(text, e.topK)
	phrases := make([]string, 0, len(candidates))
	for _, c := range candidates {
		phrases = append(phrases, c.Phrase)
	}
	return phrases
}

// Extract ranks the candidate phrases of text and returns at most topK of
// them in ascending score order.
func (e *Extractor) Extract(text string, topK int) []Candidate {
	if topK <= 0 {
		topK = e.topK
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	stats := e.collectTermStats(sentences)
	scores := e.scoreTerms(stats, len(sentences))
	ranked := e.rankPhrases(sentences, scores)

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// termStats accumulates single-pass statistics for one term.
type termStats struct {
	tf        int
	firstSent int
	acronyms  int
	proper    int
	neighbors map[string]struct{}
	sentences map[int]struct{}
}

func (e *Extractor) collectTermStats(sentences [][]string) map[string]*termStats {
	stats := make(map[string]*termStats)
	for si, sent := range sentences {
		for ti, tok := range sent {
			key := strings.ToLower(tok)
			st, ok := stats[key]
			if !ok {
				st = &termStats{
					firstSent: si,
					neighbors: make(map[string]struct{}),
					sentences: make(map[int]struct{}),
				}
				stats[key] = st
			}
			st.tf++
			st.sentences[si] = struct{}{}
			if isAcronym(tok) {
				st.acronyms++
			} else if ti > 0 && isCapitalized(tok) {
				// Sentence-initial capitals carry no signal.
				st.proper++
			}
			if ti > 0 {
				st.neighbors[strings.ToLower(sent[ti-1])] = struct{}{}
			}
			if ti+1 < len(sent) {
				st.neighbors[strings.ToLower(sent[ti+1])] = struct{}{}
			}
		}
	}
	return stats
}

// scoreTerms computes a per-term importance score; lower is better.
func (e *Extractor) scoreTerms(stats map[string]*termStats, numSentences int) map[string]float64 {
	var mean, sd float64
	if len(stats) > 0 {
		for _, st := range stats {
			mean += float64(st.tf)
		}
		mean /= float64(len(stats))
		for _, st := range stats {
			d := float64(st.tf) - mean
			sd += d * d
		}
		sd = math.Sqrt(sd / float64(len(stats)))
	}

	scores := make(map[string]float64, len(stats))
	for term, st := range stats {
		tf := float64(st.tf)

		casing := math.Max(float64(st.acronyms), float64(st.proper)) / (1 + math.Log(1+tf))
		position := math.Log(math.Log(3 + float64(st.firstSent)))
		norm := tf
		if mean+sd > 0 {
			norm = tf / (mean + sd)
		}
		relatedness := 1 + float64(len(st.neighbors))/tf
		dispersion := float64(len(st.sentences)) / float64(numSentences)

		scores[term] = (relatedness * position) / (casing + norm/relatedness + dispersion/relatedness)
	}
	return scores
}

// rankPhrases builds 1..3-gram candidates within sentence bounds and ranks
// them by combined term score. Candidates may not start or end on a
// stopword; interior stopwords are allowed in trigrams.
func (e *Extractor) rankPhrases(sentences [][]string, scores map[string]float64) []Candidate {
	type phraseInfo struct {
		terms []string
		tf    int
	}
	phrases := make(map[string]*phraseInfo)

	for _, sent := range sentences {
		for start := 0; start < len(sent); start++ {
			for length := 1; length <= maxPhraseTokens && start+length <= len(sent); length++ {
				window := sent[start : start+length]
				if e.isStopword(window[0]) || e.isStopword(window[len(window)-1]) {
					continue
				}
				terms := make([]string, length)
				for i, tok := range window {
					terms[i] = strings.ToLower(tok)
				}
				key := strings.Join(terms, " ")
				if info, ok := phrases[key]; ok {
					info.tf++
				} else {
					phrases[key] = &phraseInfo{terms: terms, tf: 1}
				}
			}
		}
	}

	ranked := make([]Candidate, 0, len(phrases))
	for phrase, info := range phrases {
		prod, sum := 1.0, 0.0
		for _, term := range info.terms {
			s := scores[term]
			prod *= s
			sum += s
		}
		score := prod / (float64(info.tf) * (1 + sum))
		ranked = append(ranked, Candidate{Phrase: phrase, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score < ranked[j].Score
		}
		return ranked[i].Phrase < ranked[j].Phrase
	})
	return ranked
}

func (e *Extractor) isStopword(tok string) bool {
	_, ok := e.stop[strings.ToLower(tok)]
	return ok
}

// splitSentences tokenizes text into sentences of cleaned word tokens.
// Tokens without a letter (numbers, bare punctuation) are dropped.
func splitSentences(text string) [][]string {
	var sentences [][]string
	for _, raw := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	}) {
		var sent []string
		for _, field := range strings.Fields(raw) {
			tok := strings.TrimFunc(field, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r)
			})
			if tok == "" || !containsLetter(tok) {
				continue
			}
			sent = append(sent, tok)
		}
		if len(sent) > 0 {
			sentences = append(sentences, sent)
		}
	}
	return sentences
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func isAcronym(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	for _, r := range tok {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func isCapitalized(tok string) bool {
	for _, r := range tok {
		return unicode.IsUpper(r)
	}
	return false
}

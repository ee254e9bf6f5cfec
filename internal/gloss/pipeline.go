package gloss

import (
	"iter"

	"github.com/pbaille/glossary/internal/classifier"
	"github.com/pbaille/glossary/internal/domain"
)

// Stats summarises one generation run without referencing its input.
type Stats struct {
	Lines      int `json:"lines"`
	Tokens     int `json:"tokens"`
	Candidates int `json:"candidates"`
	Entries    int `json:"entries"`
}

// Generate runs the whole pipeline over text and returns the glossary.
func Generate(text string, dict domain.Dictionary, opts Options) []domain.GlossaryEntry {
	entries, _ := GenerateWithStats(text, dict, opts)
	return entries
}

// GenerateWithStats is Generate that also reports counts per stage.
// Only derived entries and counts outlive the call.
func GenerateWithStats(text string, dict domain.Dictionary, opts Options) ([]domain.GlossaryEntry, Stats) {
	var stats Stats
	agg := NewAggregator(dict)
	for c := range candidates(text, opts, &stats) {
		agg.Add(c)
	}
	stats.Entries = agg.Len()
	return agg.Entries(), stats
}

// Candidates returns every candidate of text in generation order,
// duplicates included.
func Candidates(text string, opts Options) []domain.Candidate {
	var out []domain.Candidate
	for c := range candidates(text, opts, &Stats{}) {
		out = append(out, c)
	}
	return out
}

// candidates chains classifier, tokenizer and decomposer, numbering
// candidates in the order they are produced.
func candidates(text string, opts Options, stats *Stats) iter.Seq[domain.Candidate] {
	return func(yield func(domain.Candidate) bool) {
		for line := range classifier.New(opts.MinMarkedWords).Lines(text) {
			stats.Lines++
			for _, tok := range Tokenize(line, opts) {
				stats.Tokens++
				for _, c := range Decompose(tok, opts) {
					c.Order = stats.Candidates
					stats.Candidates++
					if !yield(c) {
						return
					}
				}
			}
		}
	}
}

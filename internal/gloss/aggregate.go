package gloss

import "github.com/pbaille/glossary/internal/domain"

// Aggregator deduplicates candidates into glossary entries, keeping the
// position of each abbreviation's first occurrence.
type Aggregator struct {
	dict    domain.Dictionary
	index   map[string]int
	entries []domain.GlossaryEntry
}

// NewAggregator creates an Aggregator resolving against dict
func NewAggregator(dict domain.Dictionary) *Aggregator {
	return &Aggregator{
		dict:  dict,
		index: make(map[string]int),
	}
}

// Add records one candidate. A known abbreviation only has its count
// bumped; a new one is resolved and appended.
func (a *Aggregator) Add(c domain.Candidate) {
	if i, ok := a.index[c.Text]; ok {
		a.entries[i].Count++
		return
	}

	entry := domain.GlossaryEntry{Abbreviation: c.Text, Count: 1}
	if d, ok := a.dict.Lookup(c.Text); ok {
		entry.Meaning = d.Meaning
		entry.Category = d.Category
	}
	a.index[c.Text] = len(a.entries)
	a.entries = append(a.entries, entry)
}

// Len returns the number of distinct abbreviations seen
func (a *Aggregator) Len() int {
	return len(a.entries)
}

// Entries returns the glossary in first-appearance order
func (a *Aggregator) Entries() []domain.GlossaryEntry {
	out := make([]domain.GlossaryEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

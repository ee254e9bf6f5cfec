package domain

import "sort"

// Dictionary is an immutable abbreviation lookup table.
// Keys match case-sensitively: PL and Pl are different abbreviations.
type Dictionary struct {
	entries map[string]DictionaryEntry
}

// NewDictionary builds a Dictionary. A later entry replaces an earlier
// one with the same abbreviation; entries without an abbreviation are ignored.
func NewDictionary(entries []DictionaryEntry) Dictionary {
	m := make(map[string]DictionaryEntry, len(entries))
	for _, e := range entries {
		if e.Abbreviation == "" {
			continue
		}
		m[e.Abbreviation] = e
	}
	return Dictionary{entries: m}
}

// Lookup returns the entry for abbr
func (d Dictionary) Lookup(abbr string) (DictionaryEntry, bool) {
	e, ok := d.entries[abbr]
	return e, ok
}

// Len returns the number of entries
func (d Dictionary) Len() int {
	return len(d.entries)
}

// Entries returns a copy of all entries sorted by abbreviation
func (d Dictionary) Entries() []DictionaryEntry {
	out := make([]DictionaryEntry, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Abbreviation < out[j].Abbreviation
	})
	return out
}

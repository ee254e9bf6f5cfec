package dictionary

import (
	"strings"

	"github.com/pbaille/glossary/internal/domain"
)

// Record is one imported dictionary row. It is either a BasicRecord, read
// from a file without a Category column, or a CategorizedRecord.
type Record interface {
	record()
}

// BasicRecord is a row of a two-column (Abbreviation, Meaning) import.
type BasicRecord struct {
	Abbreviation string
	Meaning      string
}

// CategorizedRecord is a row of a three-column import. An empty
// Category still means the cell was blank.
type CategorizedRecord struct {
	Abbreviation string
	Meaning      string
	Category     string
}

func (BasicRecord) record()       {}
func (CategorizedRecord) record() {}

// MergeOptions tunes precedence between user rows and built-in entries.
type MergeOptions struct {
	// PreferBuiltin keeps built-in meanings for keys present in both.
	PreferBuiltin bool
}

// MergeResult is the merged dictionary plus merge bookkeeping.
type MergeResult struct {
	Dictionary domain.Dictionary
	Merged     int
	Skipped    int
}

// Merge overlays user records on base.
//
// For a key present in both, the user's meaning and category win. A user
// row without a category takes the base category when the key exists
// there. A blank user meaning does not erase a base meaning. Rows without
// an abbreviation are skipped. Later user rows replace earlier ones.
func Merge(base domain.Dictionary, records []Record, opts MergeOptions) MergeResult {
	entries := base.Entries()
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Abbreviation] = i
	}

	res := MergeResult{}
	for _, rec := range records {
		user, ok := toEntry(rec)
		if !ok {
			res.Skipped++
			continue
		}
		res.Merged++

		merged := user
		if prev, ok := base.Lookup(user.Abbreviation); ok {
			if merged.Meaning == "" || (opts.PreferBuiltin && prev.Meaning != "") {
				merged.Meaning = prev.Meaning
			}
			if merged.Category == "" {
				merged.Category = prev.Category
			}
		}

		if i, exists := index[merged.Abbreviation]; exists {
			entries[i] = merged
			continue
		}
		index[merged.Abbreviation] = len(entries)
		entries = append(entries, merged)
	}

	res.Dictionary = domain.NewDictionary(entries)
	return res
}

// MergeBuiltin merges records into the built-in dictionary
func MergeBuiltin(records []Record, opts MergeOptions) MergeResult {
	return Merge(Builtin(), records, opts)
}

func toEntry(rec Record) (domain.DictionaryEntry, bool) {
	var e domain.DictionaryEntry
	switch r := rec.(type) {
	case BasicRecord:
		e = domain.DictionaryEntry{Abbreviation: r.Abbreviation, Meaning: r.Meaning}
	case CategorizedRecord:
		e = domain.DictionaryEntry{Abbreviation: r.Abbreviation, Meaning: r.Meaning, Category: r.Category}
	default:
		return e, false
	}
	e.Abbreviation = strings.TrimSpace(e.Abbreviation)
	e.Meaning = strings.TrimSpace(e.Meaning)
	e.Category = strings.TrimSpace(e.Category)
	return e, e.Abbreviation != ""
}

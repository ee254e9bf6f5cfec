package domain

import "time"

// GlossLine is an input line classified as carrying glossing content
type GlossLine struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Token is one morpheme segment cut out of a gloss line
type Token struct {
	Text string `json:"text"`
	Line int    `json:"line"`
}

// Candidate depths
const (
	DepthToken       = 0 // token text unchanged
	DepthDotSplit    = 1 // unit produced by splitting on '.'
	DepthPersonSplit = 2 // digit or letter run of a person/number unit
)

// Candidate is an abbreviation string produced after optional decomposition
type Candidate struct {
	Text  string `json:"text"`
	Depth int    `json:"depth"`
	Order int    `json:"order"`
}

// Categories of the built-in dictionary. An empty category means absent.
const (
	CategoryPerson = "person"
	CategoryNumber = "number"
	CategoryCase   = "case"
	CategoryTAM    = "tense/aspect/mood"
)

// DictionaryEntry resolves one abbreviation
type DictionaryEntry struct {
	Abbreviation string `json:"abbreviation"`
	Meaning      string `json:"meaning"`
	Category     string `json:"category,omitempty"`
}

// GlossaryEntry is one row of a generated glossary.
// Meaning and Category stay editable after generation.
type GlossaryEntry struct {
	Abbreviation string `json:"abbreviation"`
	Meaning      string `json:"meaning"`
	Category     string `json:"category"`
	Count        int    `json:"count"`
}

// Session is one user's in-memory workspace
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	TouchedAt time.Time `json:"touched_at"`
}

package classifier

import (
	"iter"
	"strings"

	"github.com/pbaille/glossary/internal/domain"
)

// Classifier decides which input lines are gloss lines
type Classifier struct {
	minMarked int
}

// New creates a Classifier. A line is a gloss line when at least
// minMarked of its whitespace-separated words contain '-' or '='.
// Values below 1 are treated as 1.
func New(minMarked int) *Classifier {
	if minMarked < 1 {
		minMarked = 1
	}
	return &Classifier{minMarked: minMarked}
}

// Lines yields the gloss lines of text in input order.
// Blank lines and lines without enough marked words are dropped.
func (c *Classifier) Lines(text string) iter.Seq[domain.GlossLine] {
	return func(yield func(domain.GlossLine) bool) {
		n := 0
		for raw := range strings.Lines(text) {
			n++
			line := strings.TrimSpace(raw)
			if line == "" || !c.IsGlossLine(line) {
				continue
			}
			if !yield(domain.GlossLine{Number: n, Text: line}) {
				return
			}
		}
	}
}

// IsGlossLine reports whether a single line qualifies
func (c *Classifier) IsGlossLine(line string) bool {
	if c.minMarked == 1 {
		return strings.ContainsAny(line, "-=")
	}

	marked := 0
	for _, word := range strings.Fields(line) {
		if IsMarked(word) {
			marked++
			if marked >= c.minMarked {
				return true
			}
		}
	}
	return false
}

// IsMarked reports whether a word carries a morpheme boundary
func IsMarked(word string) bool {
	return strings.ContainsAny(word, "-=")
}

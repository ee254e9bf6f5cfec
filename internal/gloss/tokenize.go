// Package gloss turns interlinear glossed text into an ordered glossary:
// gloss lines are tokenized at morpheme boundaries, tokens are optionally
// decomposed into atomic abbreviations, and the resulting candidates are
// deduplicated and resolved against a dictionary.
package gloss

import (
	"regexp"
	"strings"

	"github.com/pbaille/glossary/internal/domain"
)

// Options controls one generation request
type Options struct {
	// Decompose enables dot-splitting and person/number splitting.
	Decompose bool
	// KeepCompounds also emits the undecomposed token before its units.
	KeepCompounds bool
	// Strict trims edge punctuation and keeps only abbreviation-shaped tokens.
	Strict bool
	// MinMarkedWords is the number of words with '-' or '=' a line needs
	// to count as a gloss line.
	MinMarkedWords int
}

// DefaultOptions returns decomposition on, everything else off.
func DefaultOptions() Options {
	return Options{Decompose: true, MinMarkedWords: 1}
}

const edgePunct = `.,;:()[]{}"'`

var abbrShape = regexp.MustCompile(`^(?:[0-9]+|[0-9]*[A-Z]+)(?:\.[A-Z0-9]+)*$`)

// Tokenize splits a gloss line into morpheme tokens.
// In every word containing '-' or '=' the first segment is the stem and is
// dropped; the remaining non-empty segments become tokens. Words without a
// separator carry no abbreviation and are skipped.
func Tokenize(line domain.GlossLine, opts Options) []domain.Token {
	var tokens []domain.Token
	for _, word := range strings.Fields(line.Text) {
		if !strings.ContainsAny(word, "-=") {
			continue
		}
		segments := strings.FieldsFunc(word, isSeparator)
		if !strings.ContainsRune("-=", rune(word[0])) && len(segments) > 0 {
			segments = segments[1:]
		}
		for _, seg := range segments {
			if opts.Strict {
				seg = strings.Trim(seg, edgePunct)
				if !abbrShape.MatchString(seg) {
					continue
				}
			}
			if seg == "" {
				continue
			}
			tokens = append(tokens, domain.Token{Text: seg, Line: line.Number})
		}
	}
	return tokens
}

func isSeparator(r rune) bool {
	return r == '-' || r == '='
}

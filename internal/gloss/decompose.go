package gloss

import (
	"regexp"
	"strings"

	"github.com/pbaille/glossary/internal/domain"
)

// personNumber matches a digit run directly followed by a letter run (3SG, 2PL).
var personNumber = regexp.MustCompile(`^([0-9]+)(\p{L}+)$`)

// Decompose turns a token into abbreviation candidates.
//
// With decomposition off the token is returned unchanged. With it on, the
// token is split on '.' and every unit of the form <digits><letters> is
// further split into its digit run and letter run. The two passes run once,
// in that order: 2PL.POSS yields 2, PL, POSS.
//
// Order is left zero; the caller numbers candidates globally.
func Decompose(tok domain.Token, opts Options) []domain.Candidate {
	whole := domain.Candidate{Text: tok.Text, Depth: domain.DepthToken}
	if !opts.Decompose {
		return []domain.Candidate{whole}
	}

	var out []domain.Candidate
	if opts.KeepCompounds && isCompound(tok.Text) {
		out = append(out, whole)
	}

	for _, unit := range strings.Split(tok.Text, ".") {
		if unit == "" {
			continue
		}
		if m := personNumber.FindStringSubmatch(unit); m != nil {
			out = append(out,
				domain.Candidate{Text: m[1], Depth: domain.DepthPersonSplit},
				domain.Candidate{Text: m[2], Depth: domain.DepthPersonSplit},
			)
			continue
		}
		depth := domain.DepthDotSplit
		if unit == tok.Text {
			depth = domain.DepthToken
		}
		out = append(out, domain.Candidate{Text: unit, Depth: depth})
	}
	return out
}

// isCompound reports whether decomposition would change the token
func isCompound(text string) bool {
	return strings.Contains(text, ".") || personNumber.MatchString(text)
}

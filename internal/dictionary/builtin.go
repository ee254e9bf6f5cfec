// Package dictionary holds the built-in Leipzig abbreviation dictionary,
// merges user dictionaries into it and reads and writes the CSV
// interchange format.
package dictionary

import "github.com/pbaille/glossary/internal/domain"

var builtinEntries = []domain.DictionaryEntry{
	{Abbreviation: "1", Meaning: "1st person", Category: domain.CategoryPerson},
	{Abbreviation: "2", Meaning: "2nd person", Category: domain.CategoryPerson},
	{Abbreviation: "3", Meaning: "3rd person", Category: domain.CategoryPerson},

	{Abbreviation: "SG", Meaning: "singular", Category: domain.CategoryNumber},
	{Abbreviation: "DU", Meaning: "dual", Category: domain.CategoryNumber},
	{Abbreviation: "PL", Meaning: "plural", Category: domain.CategoryNumber},

	{Abbreviation: "NOM", Meaning: "nominative", Category: domain.CategoryCase},
	{Abbreviation: "ACC", Meaning: "accusative", Category: domain.CategoryCase},
	{Abbreviation: "DAT", Meaning: "dative", Category: domain.CategoryCase},
	{Abbreviation: "GEN", Meaning: "genitive", Category: domain.CategoryCase},
	{Abbreviation: "ABL", Meaning: "ablative", Category: domain.CategoryCase},
	{Abbreviation: "LOC", Meaning: "locative", Category: domain.CategoryCase},
	{Abbreviation: "INS", Meaning: "instrumental", Category: domain.CategoryCase},
	{Abbreviation: "ERG", Meaning: "ergative", Category: domain.CategoryCase},
	{Abbreviation: "ABS", Meaning: "absolutive", Category: domain.CategoryCase},
	{Abbreviation: "VOC", Meaning: "vocative", Category: domain.CategoryCase},
	{Abbreviation: "POSS", Meaning: "possessive", Category: domain.CategoryCase},

	{Abbreviation: "PROG", Meaning: "progressive", Category: domain.CategoryTAM},
	{Abbreviation: "PTCP", Meaning: "participle", Category: domain.CategoryTAM},
	{Abbreviation: "PAST", Meaning: "past", Category: domain.CategoryTAM},
	{Abbreviation: "PST", Meaning: "past", Category: domain.CategoryTAM},
	{Abbreviation: "NPST", Meaning: "non-past", Category: domain.CategoryTAM},
	{Abbreviation: "PRS", Meaning: "present", Category: domain.CategoryTAM},
	{Abbreviation: "FUT", Meaning: "future", Category: domain.CategoryTAM},
	{Abbreviation: "PFV", Meaning: "perfective", Category: domain.CategoryTAM},
	{Abbreviation: "IPFV", Meaning: "imperfective", Category: domain.CategoryTAM},
	{Abbreviation: "PRF", Meaning: "perfect", Category: domain.CategoryTAM},
	{Abbreviation: "CNT", Meaning: "continuative", Category: domain.CategoryTAM},
	{Abbreviation: "IMP", Meaning: "imperative", Category: domain.CategoryTAM},
	{Abbreviation: "COND", Meaning: "conditional", Category: domain.CategoryTAM},
	{Abbreviation: "SBJV", Meaning: "subjunctive", Category: domain.CategoryTAM},

	{Abbreviation: "VN", Meaning: "verbal noun"},
	{Abbreviation: "CVB", Meaning: "converb"},
	{Abbreviation: "SEQ", Meaning: "sequential"},
	{Abbreviation: "Q", Meaning: "question particle"},
	{Abbreviation: "NEG", Meaning: "negation, negative"},
	{Abbreviation: "DEF", Meaning: "definite"},
	{Abbreviation: "INDF", Meaning: "indefinite"},
	{Abbreviation: "CAUS", Meaning: "causative"},
	{Abbreviation: "PASS", Meaning: "passive"},
	{Abbreviation: "COP", Meaning: "copula"},

	{Abbreviation: "PTCP.PAST", Meaning: "past participle"},
	{Abbreviation: "PTCP.NPST", Meaning: "non-past participle"},
	{Abbreviation: "CVB.SEQ", Meaning: "sequential converb"},
	{Abbreviation: "CVB.CNT", Meaning: "continuative converb"},

	{Abbreviation: "1SG", Meaning: "1st person singular"},
	{Abbreviation: "2SG", Meaning: "2nd person singular"},
	{Abbreviation: "3SG", Meaning: "3rd person singular"},
	{Abbreviation: "1PL", Meaning: "1st person plural"},
	{Abbreviation: "2PL", Meaning: "2nd person plural"},
	{Abbreviation: "3PL", Meaning: "3rd person plural"},
}

// builtin is built once and never written afterwards, so concurrent
// readers need no locking.
var builtin = domain.NewDictionary(builtinEntries)

// Builtin returns the process-wide built-in dictionary
func Builtin() domain.Dictionary {
	return builtin
}

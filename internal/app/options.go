package app

import (
	"github.com/pbaille/glossary/internal/config"
	"github.com/pbaille/glossary/internal/dictionary"
	"github.com/pbaille/glossary/internal/gloss"
)

// GlossOptions turns configured defaults into per-request options.
func GlossOptions(cfg config.GlossaryConfig) gloss.Options {
	return gloss.Options{
		Decompose:      !cfg.NoDecompose,
		KeepCompounds:  cfg.KeepCompounds,
		Strict:         cfg.Strict,
		MinMarkedWords: cfg.MinMarkedWords,
	}
}

// MergeOptions returns the dictionary merge settings.
func MergeOptions(cfg config.GlossaryConfig) dictionary.MergeOptions {
	return dictionary.MergeOptions{PreferBuiltin: cfg.PreferBuiltin}
}

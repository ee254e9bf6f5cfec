package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pbaille/glossary/internal/app"
	"github.com/pbaille/glossary/internal/dictionary"
	"github.com/pbaille/glossary/internal/domain"
	"github.com/pbaille/glossary/internal/gloss"
	"github.com/pbaille/glossary/internal/store"
)

// session resolves the {id} path value and marks the session as used.
// It writes the error response itself and reports false on failure.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if err := s.store.TouchSession(id); err != nil {
		s.writeStoreError(w, r, err)
		return "", false
	}
	return id, true
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.CreateSession()
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.session(w, r)
	if !ok {
		return
	}
	sess, err := s.store.GetSession(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSession(r.PathValue("id")); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type dictionaryResponse struct {
	Imported    int    `json:"imported"`
	Skipped     int    `json:"skipped"`
	HasCategory bool   `json:"has_category"`
	Encoding    string `json:"encoding"`
}

func (s *Server) uploadDictionary(w http.ResponseWriter, r *http.Request) {
	id, ok := s.session(w, r)
	if !ok {
		return
	}

	// A failed upload leaves the session on the built-in dictionary.
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Session.MaxUploadBytes))
	if err != nil {
		if cerr := s.store.ClearDictionary(id); cerr != nil {
			s.writeStoreError(w, r, cerr)
			return
		}
		writeError(w, http.StatusRequestEntityTooLarge, "dictionary file too large")
		return
	}

	imp, err := dictionary.Decode(data)
	if err != nil {
		if cerr := s.store.ClearDictionary(id); cerr != nil {
			s.writeStoreError(w, r, cerr)
			return
		}
		if errors.Is(err, domain.ErrDecode) || errors.Is(err, domain.ErrMissingColumn) {
			s.logger.WarnContext(r.Context(), "dictionary rejected",
				slog.String("session", id), slog.Any("error", err))
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.writeStoreError(w, r, err)
		return
	}

	if err := s.store.ReplaceDictionary(id, imp); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.logger.InfoContext(r.Context(), "dictionary imported",
		slog.String("session", id),
		slog.Int("rows", len(imp.Records)),
		slog.Int("skipped", imp.Skipped),
		slog.String("encoding", imp.Encoding),
	)
	writeJSON(w, http.StatusOK, dictionaryResponse{
		Imported:    len(imp.Records),
		Skipped:     imp.Skipped,
		HasCategory: imp.HasCategory,
		Encoding:    imp.Encoding,
	})
}

func (s *Server) clearDictionary(w http.ResponseWriter, r *http.Request) {
	id, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := s.store.ClearDictionary(id); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type generateRequest struct {
	Text           string `json:"text"`
	URL            string `json:"url"`
	Decompose      *bool  `json:"decompose"`
	KeepCompounds  *bool  `json:"keep_compounds"`
	Strict         *bool  `json:"strict"`
	MinMarkedWords *int   `json:"min_marked_words"`
}

// options overlays request fields on the configured defaults
func (req generateRequest) options(base gloss.Options) gloss.Options {
	opts := base
	if req.Decompose != nil {
		opts.Decompose = *req.Decompose
	}
	if req.KeepCompounds != nil {
		opts.KeepCompounds = *req.KeepCompounds
	}
	if req.Strict != nil {
		opts.Strict = *req.Strict
	}
	if req.MinMarkedWords != nil {
		opts.MinMarkedWords = *req.MinMarkedWords
	}
	return opts
}

type glossaryResponse struct {
	Entries []domain.GlossaryEntry `json:"entries"`
	Stats   *gloss.Stats           `json:"stats,omitempty"`
}

func (s *Server) generateGlossary(w http.ResponseWriter, r *http.Request) {
	id, ok := s.session(w, r)
	if !ok {
		return
	}

	var req generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.Session.MaxTextBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "text too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.MinMarkedWords != nil && *req.MinMarkedWords < 1 {
		writeError(w, http.StatusBadRequest, "min_marked_words must be at least 1")
		return
	}

	text := req.Text
	if strings.TrimSpace(text) == "" && req.URL != "" {
		fetched, err := s.fetcher.Fetch(r.Context(), req.URL)
		if err != nil {
			s.logger.WarnContext(r.Context(), "fetch failed", slog.String("url", req.URL), slog.Any("error", err))
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		text = fetched
	}

	records, err := s.store.Dictionary(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	merged := dictionary.MergeBuiltin(records, app.MergeOptions(s.cfg.Glossary))

	entries, stats := gloss.GenerateWithStats(text, merged.Dictionary, req.options(app.GlossOptions(s.cfg.Glossary)))
	if err := s.store.ReplaceGlossary(id, entries); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.logger.InfoContext(r.Context(), "glossary generated",
		slog.String("session", id),
		slog.Int("lines", stats.Lines),
		slog.Int("tokens", stats.Tokens),
		slog.Int("entries", stats.Entries),
	)
	writeJSON(w, http.StatusOK, glossaryResponse{Entries: entries, Stats: &stats})
}

func (s *Server) getGlossary(w http.ResponseWriter, r *http.Request) {
	id, ok := s.session(w, r)
	if !ok {
		return
	}
	entries, err := s.store.Glossary(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, glossaryResponse{Entries: entries})
}

func (s *Server) exportGlossary(w http.ResponseWriter, r *http.Request) {
	id, ok := s.session(w, r)
	if !ok {
		return
	}
	entries, err := s.store.Glossary(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := dictionary.EncodeGlossary(&buf, entries); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="abbreviation_glossary.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

type entryRequest struct {
	Abbreviation string `json:"abbreviation"`
	Meaning      string `json:"meaning"`
	Category     string `json:"category"`
}

func (s *Server) addEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := s.session(w, r)
	if !ok {
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	entry := domain.GlossaryEntry{
		Abbreviation: strings.TrimSpace(req.Abbreviation),
		Meaning:      strings.TrimSpace(req.Meaning),
		Category:     strings.TrimSpace(req.Category),
	}
	if entry.Abbreviation == "" {
		s.writeStoreError(w, r, domain.NewValidationError("abbreviation", "required"))
		return
	}

	if err := s.store.AddGlossaryEntry(id, entry); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

type editRequest struct {
	Meaning  *string `json:"meaning"`
	Category *string `json:"category"`
}

func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := s.session(w, r)
	if !ok {
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Meaning == nil && req.Category == nil {
		s.writeStoreError(w, r, domain.NewValidationError("meaning", "nothing to update"))
		return
	}

	entry, err := s.store.UpdateGlossaryEntry(id, r.PathValue("abbr"), store.GlossaryEdit{
		Meaning:  req.Meaning,
		Category: req.Category,
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteGlossaryEntry(id, r.PathValue("abbr")); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) builtin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": dictionary.Builtin().Entries()})
}

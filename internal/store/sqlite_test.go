package store

import (
	"testing"
	"time"

	"github.com/pbaille/glossary/internal/dictionary"
	"github.com/pbaille/glossary/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	sess, err := s.CreateSession()
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)

	got, err := s.GetSession(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	require.NoError(t, s.TouchSession(sess.ID))
	require.NoError(t, s.DeleteSession(sess.ID))

	_, err = s.GetSession(sess.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteSession(sess.ID), domain.ErrNotFound)
	assert.ErrorIs(t, s.TouchSession("missing"), domain.ErrNotFound)
}

func TestStoresAreIsolated(t *testing.T) {
	t.Parallel()
	a := newTestStore(t)
	b := newTestStore(t)

	sess, err := a.CreateSession()
	require.NoError(t, err)

	_, err = b.GetSession(sess.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurgeIdleSessions(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	old, err := s.CreateSession()
	require.NoError(t, err)
	require.NoError(t, s.ReplaceGlossary(old.ID, []domain.GlossaryEntry{{Abbreviation: "PL", Count: 1}}))

	s.now = func() time.Time { return base.Add(time.Hour) }
	fresh, err := s.CreateSession()
	require.NoError(t, err)

	n, err := s.PurgeIdleSessions(base.Add(30 * time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = s.GetSession(old.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetSession(fresh.ID)
	assert.NoError(t, err)

	var orphans int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM glossary_entries").Scan(&orphans))
	assert.Zero(t, orphans)
}

func TestDictionaryRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	sess, err := s.CreateSession()
	require.NoError(t, err)

	records, err := s.Dictionary(sess.ID)
	require.NoError(t, err)
	assert.Nil(t, records)

	imp := &dictionary.Import{
		HasCategory: true,
		Records: []dictionary.Record{
			dictionary.CategorizedRecord{Abbreviation: "SG", Meaning: "Sg.", Category: ""},
			dictionary.CategorizedRecord{Abbreviation: "EVID", Meaning: "evidential", Category: "mood"},
		},
	}
	require.NoError(t, s.ReplaceDictionary(sess.ID, imp))

	records, err = s.Dictionary(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, imp.Records, records)

	basic := &dictionary.Import{Records: []dictionary.Record{dictionary.BasicRecord{Abbreviation: "PL", Meaning: "Pl."}}}
	require.NoError(t, s.ReplaceDictionary(sess.ID, basic))
	records, err = s.Dictionary(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, basic.Records, records)

	require.NoError(t, s.ClearDictionary(sess.ID))
	records, err = s.Dictionary(sess.ID)
	require.NoError(t, err)
	assert.Nil(t, records)

	assert.ErrorIs(t, s.ReplaceDictionary("missing", imp), domain.ErrNotFound)
}

func TestGlossaryEditing(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	sess, err := s.CreateSession()
	require.NoError(t, err)

	generated := []domain.GlossaryEntry{
		{Abbreviation: "PROG", Meaning: "progressive", Category: domain.CategoryTAM, Count: 1},
		{Abbreviation: "3", Meaning: "3rd person", Category: domain.CategoryPerson, Count: 2},
		{Abbreviation: "XYZ", Count: 1},
	}
	require.NoError(t, s.ReplaceGlossary(sess.ID, generated))

	got, err := s.Glossary(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, generated, got)

	updated, err := s.UpdateGlossaryEntry(sess.ID, "XYZ", GlossaryEdit{Meaning: strPtr("mystery")})
	require.NoError(t, err)
	assert.Equal(t, domain.GlossaryEntry{Abbreviation: "XYZ", Meaning: "mystery", Count: 1}, *updated)

	_, err = s.UpdateGlossaryEntry(sess.ID, "NOPE", GlossaryEdit{Meaning: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.AddGlossaryEntry(sess.ID, domain.GlossaryEntry{Abbreviation: "EVID", Meaning: "evidential"}))
	assert.ErrorIs(t, s.AddGlossaryEntry(sess.ID, domain.GlossaryEntry{Abbreviation: "PROG"}), domain.ErrAlreadyExists)

	require.NoError(t, s.DeleteGlossaryEntry(sess.ID, "3"))
	assert.ErrorIs(t, s.DeleteGlossaryEntry(sess.ID, "3"), domain.ErrNotFound)

	got, err = s.Glossary(sess.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"PROG", "XYZ", "EVID"}, []string{got[0].Abbreviation, got[1].Abbreviation, got[2].Abbreviation})

	require.NoError(t, s.ReplaceGlossary(sess.ID, generated[:1]))
	got, err = s.Glossary(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, generated[:1], got)
}

func TestGlossary_EmptySessionAndMissing(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	sess, err := s.CreateSession()
	require.NoError(t, err)

	got, err := s.Glossary(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = s.Glossary("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddGlossaryEntry_EmptyGlossary(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	sess, err := s.CreateSession()
	require.NoError(t, err)

	require.NoError(t, s.AddGlossaryEntry(sess.ID, domain.GlossaryEntry{Abbreviation: "A"}))
	require.NoError(t, s.AddGlossaryEntry(sess.ID, domain.GlossaryEntry{Abbreviation: "B"}))

	got, err := s.Glossary(sess.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Abbreviation)
	assert.Equal(t, "B", got[1].Abbreviation)
}

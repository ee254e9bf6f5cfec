package dictionary

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pbaille/glossary/internal/domain"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Column names of the interchange format.
const (
	ColAbbreviation = "Abbreviation"
	ColMeaning      = "Meaning"
	ColCategory     = "Category"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Encodings tried in order when reading an uploaded dictionary. The UTF-8
// decoder strips a leading byte order mark, so plain UTF-8 and UTF-8 with
// BOM share one attempt. UTF-8 input is accepted when it is valid as is,
// U+FFFD included; a legacy decode is rejected when it had to substitute
// U+FFFD for undecodable bytes.
var encodings = []struct {
	name   string
	enc    encoding.Encoding
	native bool
}{
	{name: "utf-8", enc: unicode.UTF8BOM, native: true},
	{name: "shift_jis", enc: japanese.ShiftJIS},
}

// Import is the result of reading a dictionary file.
type Import struct {
	Records []Record
	// HasCategory is true when the file carries a Category column; Records
	// are then CategorizedRecord values, BasicRecord values otherwise.
	HasCategory bool
	// Skipped counts rows dropped for a missing abbreviation.
	Skipped  int
	Encoding string
}

// Decode reads a CSV dictionary in any supported encoding.
// Header names are matched case-insensitively; Abbreviation and Meaning
// are required, Category is optional.
func Decode(data []byte) (*Import, error) {
	text, encName, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", domain.ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrDecode, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	abbrCol, ok := cols[strings.ToLower(ColAbbreviation)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, ColAbbreviation)
	}
	meaningCol, ok := cols[strings.ToLower(ColMeaning)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, ColMeaning)
	}
	catCol, hasCat := cols[strings.ToLower(ColCategory)]

	imp := &Import{HasCategory: hasCat, Encoding: encName}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read row: %v", domain.ErrDecode, err)
		}

		abbr := cell(row, abbrCol)
		if abbr == "" {
			imp.Skipped++
			continue
		}
		if hasCat {
			imp.Records = append(imp.Records, CategorizedRecord{
				Abbreviation: abbr,
				Meaning:      cell(row, meaningCol),
				Category:     cell(row, catCol),
			})
		} else {
			imp.Records = append(imp.Records, BasicRecord{
				Abbreviation: abbr,
				Meaning:      cell(row, meaningCol),
			})
		}
	}
	return imp, nil
}

func decodeText(data []byte) (string, string, error) {
	names := make([]string, 0, len(encodings))
	for _, e := range encodings {
		names = append(names, e.name)
		if e.native && !utf8.Valid(bytes.TrimPrefix(data, utf8BOM)) {
			continue
		}
		out, err := e.enc.NewDecoder().Bytes(data)
		if err != nil || !utf8.Valid(out) {
			continue
		}
		if !e.native && bytes.ContainsRune(out, utf8.RuneError) {
			continue
		}
		return string(out), e.name, nil
	}
	return "", "", fmt.Errorf("%w: tried %s", domain.ErrDecode, strings.Join(names, ", "))
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// EncodeGlossary writes entries as UTF-8 CSV with an
// Abbreviation, Meaning, Category header.
func EncodeGlossary(w io.Writer, entries []domain.GlossaryEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Abbreviation, e.Meaning, e.Category})
	}
	return writeRows(w, rows)
}

// EncodeDictionary writes a dictionary in the same format, sorted by abbreviation.
func EncodeDictionary(w io.Writer, d domain.Dictionary) error {
	entries := d.Entries()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Abbreviation, e.Meaning, e.Category})
	}
	return writeRows(w, rows)
}

func writeRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColAbbreviation, ColMeaning, ColCategory}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

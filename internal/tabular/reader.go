package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// RequiredColumns are synthesized as entirely-absent when missing from
// the input header.
var RequiredColumns = []string{"Date", "Description", "Amount", "Category"}

// naMarkers are cell values treated as absent on load.
var naMarkers = map[string]bool{
	"":     true,
	"None": true,
	"nan":  true,
	"NaN":  true,
}

// RawTable is the messy input grid before column normalization. Cells
// hold raw text; absent values are the empty string.
type RawTable struct {
	Columns []string
	Rows    []map[string]string
	Charset string // detected input encoding, "" when detection failed
}

var titleCaser = cases.Title(language.English)

// ReadCSV loads a delimited file into a RawTable. Column names are
// trimmed and title-cased, missing required columns synthesized, and NA
// markers resolved to absent. A missing file or an input unreadable as
// tabular data is an error; per-cell problems are not.
func ReadCSV(path string) (*RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input %q: %w", path, err)
	}

	decoded, charset := decodeCharset(data)

	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %q as CSV: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %q as CSV: no header row", path)
	}

	columns := make([]string, 0, len(records[0]))
	for _, c := range records[0] {
		columns = append(columns, titleCaser.String(strings.TrimSpace(c)))
	}
	for _, req := range RequiredColumns {
		if !contains(columns, req) {
			columns = append(columns, req)
		}
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			cell := ""
			if i < len(rec) {
				cell = rec[i]
			}
			if naMarkers[strings.TrimSpace(cell)] {
				cell = ""
			}
			row[col] = cell
		}
		rows = append(rows, row)
	}

	return &RawTable{Columns: columns, Rows: rows, Charset: charset}, nil
}

// decodeCharset detects the input encoding and transcodes to UTF-8 when
// needed. Detection is a pre-flight diagnostic: any failure falls back
// to the raw bytes.
func decodeCharset(data []byte) ([]byte, string) {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return data, ""
	}
	if result.Charset == "UTF-8" || result.Charset == "ASCII" {
		return data, result.Charset
	}
	enc, err := htmlindex.Get(strings.ToLower(result.Charset))
	if err != nil {
		return data, result.Charset
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return data, result.Charset
	}
	return decoded, result.Charset
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

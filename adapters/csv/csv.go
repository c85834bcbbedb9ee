// Package csv provides a DataSource over delimited text files.
package csv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/magpierre/gridaccess/adapters/slice"
	"github.com/magpierre/gridaccess/datatable"
)

// Config controls how delimited text is parsed.
type Config struct {
	// Delimiter separates fields. Zero means detect it from the first line.
	Delimiter rune

	// HasHeaders treats the first record as column names.
	HasHeaders bool

	// TrimSpace removes leading and trailing white space from every field.
	TrimSpace bool

	// Comment, if not zero, marks lines to skip.
	Comment rune

	// InferTypes types a column as int, float or bool when every non-empty
	// field parses as one. Otherwise all columns are strings.
	InferTypes bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Delimiter:  ',',
		HasHeaders: true,
		TrimSpace:  true,
		InferTypes: true,
	}
}

// NewFromFile loads a delimited file.
func NewFromFile(path string, cfg Config) (*slice.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	src, err := NewFromReader(f, cfg)
	if err != nil {
		return nil, err
	}
	md := src.Metadata()
	md["path"] = path
	return src, nil
}

// NewFromReader parses delimited text from r.
func NewFromReader(r io.Reader, cfg Config) (*slice.Source, error) {
	br := bufio.NewReader(r)
	if cfg.Delimiter == 0 {
		line, err := br.Peek(br.Size())
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		cfg.Delimiter = DetectSeparator(firstLine(string(line)))
	}

	reader := csv.NewReader(br)
	reader.Comma = cfg.Delimiter
	reader.Comment = cfg.Comment
	reader.TrimLeadingSpace = cfg.TrimSpace
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, datatable.ErrEmptyData
	}

	width := 0
	for _, rec := range records {
		width = max(width, len(rec))
	}

	var names []string
	if cfg.HasHeaders {
		names = records[0]
		records = records[1:]
	}
	for len(names) < width {
		names = append(names, fmt.Sprintf("Column %d", len(names)+1))
	}
	for i, name := range names {
		names[i] = strings.TrimSpace(name)
	}

	for i, rec := range records {
		for j := range rec {
			if cfg.TrimSpace {
				rec[j] = strings.TrimSpace(rec[j])
			}
		}
		for len(rec) < len(names) {
			rec = append(rec, "")
		}
		records[i] = rec
	}

	types := make([]datatable.DataType, len(names))
	for col := range names {
		types[col] = datatable.TypeString
		if cfg.InferTypes {
			types[col] = inferColumn(records, col)
		}
	}

	rows := make([][]datatable.Value, len(records))
	for i, rec := range records {
		rows[i] = make([]datatable.Value, len(names))
		for col := range names {
			rows[i][col] = parseField(rec[col], types[col])
		}
	}

	src, err := slice.NewFromValues(names, types, rows)
	if err != nil {
		return nil, err
	}
	src.SetMetadata(datatable.Metadata{"source": "csv", "delimiter": SeparatorName(cfg.Delimiter)})
	return src, nil
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// DetectSeparator picks the most frequent of comma, semicolon, tab and
// pipe in line. Comma wins ties and empty lines.
func DetectSeparator(line string) rune {
	best, bestCount := ',', strings.Count(line, ",")
	for _, sep := range []rune{';', '\t', '|'} {
		if n := strings.Count(line, string(sep)); n > bestCount {
			best, bestCount = sep, n
		}
	}
	return best
}

// DetectFileSeparator reads the first line of a file and detects its
// separator.
func DetectFileSeparator(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return ',', fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ',', scanner.Err()
	}
	return DetectSeparator(scanner.Text()), nil
}

// SeparatorName returns a human readable name for a separator.
func SeparatorName(sep rune) string {
	switch sep {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	case '|':
		return "pipe"
	default:
		return string(sep)
	}
}

func inferColumn(records [][]string, col int) datatable.DataType {
	candidates := []datatable.DataType{datatable.TypeInt, datatable.TypeFloat, datatable.TypeBool}
	seen := false
	for _, rec := range records {
		field := rec[col]
		if field == "" {
			continue
		}
		seen = true
		kept := candidates[:0]
		for _, typ := range candidates {
			if _, ok := parseTyped(field, typ); ok {
				kept = append(kept, typ)
			}
		}
		candidates = kept
		if len(candidates) == 0 {
			return datatable.TypeString
		}
	}
	if !seen {
		return datatable.TypeString
	}
	return candidates[0]
}

func parseTyped(field string, typ datatable.DataType) (interface{}, bool) {
	switch typ {
	case datatable.TypeInt:
		n, err := strconv.ParseInt(field, 10, 64)
		return n, err == nil
	case datatable.TypeFloat:
		f, err := strconv.ParseFloat(field, 64)
		return f, err == nil
	case datatable.TypeBool:
		b, err := strconv.ParseBool(field)
		return b, err == nil
	}
	return field, true
}

func parseField(field string, typ datatable.DataType) datatable.Value {
	if field == "" && typ != datatable.TypeString {
		return datatable.NewNullValue(typ)
	}
	raw, ok := parseTyped(field, typ)
	if !ok {
		return datatable.NewTextValue(field)
	}
	v := datatable.NewValue(raw, typ)
	v.Formatted = field
	return v
}

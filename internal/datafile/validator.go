package datafile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lakecheck-io/lakecheck/internal/logging"
)

// DefaultPath is the fixed relative location of the seed data file.
const DefaultPath = "data/country_currency.csv"

// RequiredColumns must each appear as an exact header field.
var RequiredColumns = []string{
	"country_code",
	"country_number",
	"country",
	"currency_name",
	"currency_code",
	"currency_number",
}

// keyFields are the 1-based field positions whose values must never be
// empty or a NULL literal: the country code and the currency code.
var keyFields = []int{1, 5}

// Result describes the outcome of validating one data file.
type Result struct {
	Path           string
	Exists         bool
	Records        int
	MissingColumns []string
	NullCounts     map[int]int // keyed by 1-based field position
}

// OK reports whether the file passed every structural check.
func (r *Result) OK() bool {
	if !r.Exists || len(r.MissingColumns) > 0 {
		return false
	}
	for _, n := range r.NullCounts {
		if n > 0 {
			return false
		}
	}
	return true
}

// Detail renders the single-line summary used in check output.
func (r *Result) Detail() string {
	if !r.Exists {
		return fmt.Sprintf("data file not found: %s", r.Path)
	}
	if len(r.MissingColumns) > 0 {
		return fmt.Sprintf("missing required columns: %s", strings.Join(r.MissingColumns, ", "))
	}
	var nulls []string
	for _, pos := range keyFields {
		if n := r.NullCounts[pos]; n > 0 {
			nulls = append(nulls, fmt.Sprintf("field %d has %d null value(s)", pos, n))
		}
	}
	if len(nulls) > 0 {
		return strings.Join(nulls, "; ")
	}
	return fmt.Sprintf("%d records, all key fields populated", r.Records)
}

// Validate checks the structure and key-column integrity of the tabular data
// file at path. A missing file is reported through the result, not an error;
// the error return is reserved for read failures.
func Validate(path string) (*Result, error) {
	res := &Result{
		Path:       path,
		NullCounts: make(map[int]int),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return res, nil
		}
		return nil, fmt.Errorf("failed to open data file %s: %w", path, err)
	}
	defer f.Close()
	res.Exists = true

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
		}
		// Empty file: every required column is missing.
		res.MissingColumns = append(res.MissingColumns, RequiredColumns...)
		return res, nil
	}

	res.MissingColumns = missingColumns(scanner.Text())

	for scanner.Scan() {
		res.Records++
		fields := strings.Split(scanner.Text(), ",")
		for _, pos := range keyFields {
			if isNull(fieldAt(fields, pos)) {
				res.NullCounts[pos]++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}

	logging.Debug("data file validated",
		"path", path, "records", res.Records, "missing_columns", len(res.MissingColumns))

	return res, nil
}

// missingColumns matches required column names against the comma-split
// header as exact tokens. Substring matching would accept a header whose
// currency_code_alpha column masks a missing currency_code.
func missingColumns(header string) []string {
	present := make(map[string]bool)
	for _, col := range strings.Split(header, ",") {
		present[strings.TrimSpace(col)] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// fieldAt returns the 1-based positional field, or "" past the end of the
// row so that short rows count as null key values.
func fieldAt(fields []string, pos int) string {
	if pos > len(fields) {
		return ""
	}
	return fields[pos-1]
}

// isNull matches the exact literals the loader treats as absent. Only these
// two spellings of NULL count; the comparison is otherwise case-sensitive.
func isNull(v string) bool {
	return v == "" || v == "NULL" || v == "null"
}

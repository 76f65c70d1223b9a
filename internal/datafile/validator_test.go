package datafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodHeader = "country_code,country_number,country,currency_name,currency_code,currency_number"

func writeData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "country_currency.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidatePass(t *testing.T) {
	path := writeData(t, goodHeader+"\n"+
		"US,840,United States,US Dollar,USD,840\n"+
		"DE,276,Germany,Euro,EUR,978\n")

	res, err := Validate(path)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.True(t, res.Exists)
	assert.Equal(t, 2, res.Records)
	assert.Empty(t, res.MissingColumns)
	assert.Equal(t, 0, res.NullCounts[1])
	assert.Equal(t, 0, res.NullCounts[5])
}

func TestValidateMissingFile(t *testing.T) {
	res, err := Validate(filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.False(t, res.Exists)
	assert.Contains(t, res.Detail(), "not found")
}

func TestValidateMissingColumn(t *testing.T) {
	path := writeData(t, "country_code,country_number,country,currency_name,currency_number\n"+
		"US,840,United States,US Dollar,840\n")

	res, err := Validate(path)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, []string{"currency_code"}, res.MissingColumns)
	assert.Contains(t, res.Detail(), "currency_code")
}

func TestValidateExactColumnMatch(t *testing.T) {
	// currency_code_alpha must not satisfy the currency_code requirement.
	path := writeData(t, "country_code,country_number,country,currency_name,currency_code_alpha,currency_number\n")

	res, err := Validate(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"currency_code"}, res.MissingColumns)
}

func TestValidateNullKeyValues(t *testing.T) {
	tests := []struct {
		name  string
		rows  string
		want1 int
		want5 int
	}{
		{
			name:  "empty currency code",
			rows:  "US,840,United States,US Dollar,,840\n",
			want5: 1,
		},
		{
			name:  "NULL literal country code",
			rows:  "NULL,840,United States,US Dollar,USD,840\n",
			want1: 1,
		},
		{
			name:  "lowercase null literal",
			rows:  "null,840,United States,US Dollar,null,840\n",
			want1: 1,
			want5: 1,
		},
		{
			name: "other casings do not count",
			rows: "Null,840,United States,US Dollar,nulL,840\n",
		},
		{
			name:  "short row counts as null",
			rows:  "US,840\n",
			want5: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Validate(writeData(t, goodHeader+"\n"+tt.rows))
			require.NoError(t, err)
			assert.Equal(t, tt.want1, res.NullCounts[1], "field 1")
			assert.Equal(t, tt.want5, res.NullCounts[5], "field 5")
			assert.Equal(t, tt.want1 == 0 && tt.want5 == 0, res.OK())
		})
	}
}

func TestValidateRecordCount(t *testing.T) {
	path := writeData(t, goodHeader+"\n"+
		"US,840,United States,US Dollar,USD,840\n"+
		"DE,276,Germany,Euro,EUR,978\n"+
		"JP,392,Japan,Yen,JPY,392\n")

	res, err := Validate(path)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Records)
}

func TestValidateEmptyFile(t *testing.T) {
	res, err := Validate(writeData(t, ""))
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, RequiredColumns, res.MissingColumns)
}

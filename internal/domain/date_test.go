package domain

import (
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	t.Run("parses YYYY-MM-DD", func(t *testing.T) {
		t.Parallel()
		d, err := ParseDate("1839-06-21")
		require.NoError(t, err)
		assert.Equal(t, "1839-06-21", d.String())
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		t.Parallel()
		for _, input := range []string{"21/06/1839", "1839-6-21", "yesterday", ""} {
			_, err := ParseDate(input)
			assert.ErrorIs(t, err, ErrInvalidDate, "input %q", input)
		}
	})
}

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	var json = jsoniter.ConfigCompatibleWithStandardLibrary

	type payload struct {
		LoanDate Date `json:"loan_date"`
	}

	in := payload{LoanDate: NewDate(2024, time.December, 6)}
	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"loan_date":"2024-12-06"}`, string(raw))

	var out payload
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.LoanDate.Equal(in.LoanDate))
}

func TestDateScan(t *testing.T) {
	t.Parallel()

	var d Date
	require.NoError(t, d.Scan(time.Date(1861, time.January, 1, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "1861-01-01", d.String())

	require.NoError(t, d.Scan("1920-12-10"))
	assert.Equal(t, "1920-12-10", d.String())

	assert.Error(t, d.Scan(42))
}

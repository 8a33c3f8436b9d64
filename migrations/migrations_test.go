package migrations

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uniquePattern = regexp.MustCompile(`(?m)^\s*UNIQUE \(([^)]+)\)`)

func uniqueColumns(t *testing.T, file string) string {
	t.Helper()
	sql, err := FS.ReadFile(file)
	require.NoError(t, err)

	match := uniquePattern.FindSubmatch(sql)
	require.NotNil(t, match, "expected a UNIQUE constraint in %s", file)
	return string(match[1])
}

// Each table's UNIQUE constraint must cover exactly the columns its store's
// FindOrCreate matches on. A constraint narrower than the lookup key turns
// valid creates into unique violations: the pre-insert SELECT misses because
// some column differs, then the INSERT collides on the narrower key.
func TestUniqueConstraintsMatchFindOrCreateKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "name, birthdate",
		uniqueColumns(t, "20260101000002_create_authors_table.sql"))
	assert.Equal(t, "title, publication_year, author_id",
		uniqueColumns(t, "20260101000003_create_books_table.sql"))
	assert.Equal(t, "user_id, book_id, loan_date, return_date",
		uniqueColumns(t, "20260101000004_create_loans_table.sql"))
}

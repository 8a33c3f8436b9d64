package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthor(t *testing.T) {
	t.Parallel()

	birthdate := NewDate(1839, time.June, 21)

	t.Run("creates valid author", func(t *testing.T) {
		t.Parallel()
		author, err := NewAuthor("Machado de Assis", birthdate)
		require.NoError(t, err)

		assert.Equal(t, "Machado de Assis", author.Name)
		assert.True(t, author.Birthdate.Equal(birthdate))
		assert.Zero(t, author.ID)
		assert.False(t, author.CreatedAt.IsZero())
	})

	tests := []struct {
		name      string
		inputName string
		birthdate Date
		wantErr   error
	}{
		{
			name:      "name too short",
			inputName: "Jo",
			birthdate: birthdate,
			wantErr:   ErrAuthorNameTooShort,
		},
		{
			name:      "name too long",
			inputName: strings.Repeat("a", 101),
			birthdate: birthdate,
			wantErr:   ErrAuthorNameTooLong,
		},
		{
			name:      "missing birthdate",
			inputName: "Machado de Assis",
			birthdate: Date{},
			wantErr:   ErrEmptyBirthdate,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewAuthor(tc.inputName, tc.birthdate)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAuthorPatch(t *testing.T) {
	t.Parallel()

	t.Run("empty patch changes nothing", func(t *testing.T) {
		t.Parallel()
		assert.True(t, AuthorPatch{}.IsEmpty())
	})

	t.Run("applies only set fields", func(t *testing.T) {
		t.Parallel()
		author, err := NewAuthor("Machado de Assis", NewDate(1839, time.June, 21))
		require.NoError(t, err)

		newName := "Joaquim Maria Machado de Assis"
		patch := AuthorPatch{Name: &newName}
		require.False(t, patch.IsEmpty())

		before := author.Birthdate
		patch.Apply(author)

		assert.Equal(t, newName, author.Name)
		assert.True(t, author.Birthdate.Equal(before))
	})
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmachado/library-api/internal/domain"
	"github.com/rmachado/library-api/internal/service"
	"github.com/rmachado/library-api/internal/store"
)

var testJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope mirrors shared.Envelope for decoding test responses.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    jsoniter.RawMessage `json:"data"`
	Errors  map[string]string   `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, testJSON.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAuthorHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc := &mockAuthorService{
			createFn: func(_ context.Context, name string, birthdate domain.Date) (*domain.Author, error) {
				return &domain.Author{ID: 11, Name: name, Birthdate: birthdate}, nil
			},
		}
		handler := NewAuthorHandler(svc)

		body := `{"name":"Machado de Assis","birthdate":"1839-06-21"}`
		req := httptest.NewRequest(http.MethodPost, "/createAuthor", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)

		var author domain.Author
		require.NoError(t, testJSON.Unmarshal(env.Data, &author))
		assert.Equal(t, int64(11), author.ID)
		assert.Equal(t, "Machado de Assis", author.Name)
	})

	t.Run("name too short", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthorHandler(&mockAuthorService{})

		body := `{"name":"ab","birthdate":"1839-06-21"}`
		req := httptest.NewRequest(http.MethodPost, "/createAuthor", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "too short", env.Errors["name"])
	})

	t.Run("malformed birthdate", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthorHandler(&mockAuthorService{})

		body := `{"name":"Machado de Assis","birthdate":"21/06/1839"}`
		req := httptest.NewRequest(http.MethodPost, "/createAuthor", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthorHandler(&mockAuthorService{})

		req := httptest.NewRequest(http.MethodPost, "/createAuthor", strings.NewReader("{"))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service failure", func(t *testing.T) {
		t.Parallel()
		svc := &mockAuthorService{
			createFn: func(_ context.Context, _ string, _ domain.Date) (*domain.Author, error) {
				return nil, service.E(service.FailureCreateAuthorFailed, "create author",
					errors.New("connection reset"))
			},
		}
		handler := NewAuthorHandler(svc)

		body := `{"name":"Machado de Assis","birthdate":"1839-06-21"}`
		req := httptest.NewRequest(http.MethodPost, "/createAuthor", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Failed to create author", env.Message)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})
}

func TestAuthorHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("query params become the spec", func(t *testing.T) {
		t.Parallel()
		var gotSpec store.PaginationSpec
		svc := &mockAuthorService{
			listFn: func(_ context.Context, spec store.PaginationSpec) (store.Page[domain.Author], error) {
				gotSpec = spec
				return store.NewPage([]domain.Author{{ID: 1}}, 1, spec), nil
			},
		}
		handler := NewAuthorHandler(svc)

		req := httptest.NewRequest(http.MethodGet,
			"/getAuthors?perPage=25&page=2&orderBy=name&orderDirection=desc&name=mach", nil)
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 25, gotSpec.PerPage)
		assert.Equal(t, 2, gotSpec.Page)
		assert.Equal(t, "name", gotSpec.OrderBy)
		assert.Equal(t, store.OrderDesc, gotSpec.OrderDirection)
		assert.Equal(t, map[string]string{"name": "mach"}, gotSpec.Filters)
	})

	t.Run("unknown column rejected by the engine", func(t *testing.T) {
		t.Parallel()
		svc := &mockAuthorService{
			listFn: func(_ context.Context, _ store.PaginationSpec) (store.Page[domain.Author], error) {
				return store.Page[domain.Author]{}, service.E(
					service.FailureListAuthorsFailed, "list authors", store.ErrInvalidColumn)
			},
		}
		handler := NewAuthorHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/getAuthors?orderBy=email", nil)
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Failed to list authors", env.Message)
	})
}

func TestAuthorHandlerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("partial patch", func(t *testing.T) {
		t.Parallel()
		var gotPatch domain.AuthorPatch
		svc := &mockAuthorService{
			updateFn: func(_ context.Context, id int64, patch domain.AuthorPatch) (*domain.Author, error) {
				gotPatch = patch
				return &domain.Author{ID: id, Name: *patch.Name}, nil
			},
		}
		handler := NewAuthorHandler(svc)

		body := `{"id":11,"name":"New Name"}`
		req := httptest.NewRequest(http.MethodPut, "/updateAuthor", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotPatch.Name)
		assert.Equal(t, "New Name", *gotPatch.Name)
		assert.Nil(t, gotPatch.Birthdate)
	})

	t.Run("unknown author", func(t *testing.T) {
		t.Parallel()
		svc := &mockAuthorService{
			updateFn: func(_ context.Context, _ int64, _ domain.AuthorPatch) (*domain.Author, error) {
				return nil, service.E(service.FailureAuthorNotFound, "update author",
					store.ErrAuthorNotFound)
			},
		}
		handler := NewAuthorHandler(svc)

		body := `{"id":404,"name":"New Name"}`
		req := httptest.NewRequest(http.MethodPut, "/updateAuthor", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Author not found", env.Message)
	})

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthorHandler(&mockAuthorService{})

		body := `{"name":"New Name"}`
		req := httptest.NewRequest(http.MethodPut, "/updateAuthor", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthorHandlerDelete(t *testing.T) {
	t.Parallel()

	svc := &mockAuthorService{
		deleteFn: func(_ context.Context, id int64) error {
			if id == 404 {
				return service.E(service.FailureAuthorNotFound, "delete author",
					store.ErrAuthorNotFound)
			}
			return nil
		},
	}
	handler := NewAuthorHandler(svc)

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodDelete, "/deleteAuthor", strings.NewReader(`{"id":11}`))
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "Author deleted successfully", env.Message)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodDelete, "/deleteAuthor", strings.NewReader(`{"id":404}`))
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

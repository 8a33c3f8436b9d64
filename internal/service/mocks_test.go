package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/rmachado/library-api/internal/domain"
	"github.com/rmachado/library-api/internal/store"
)

// passTx runs the transactional function without a database; the fakes
// below ignore the nil transaction handle.
func passTx(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockAuthorStore struct {
	findOrCreateFn func(ctx context.Context, author *domain.Author) (*domain.Author, error)
	getByIDFn      func(ctx context.Context, id int64) (*domain.Author, error)
	updateFn       func(ctx context.Context, author *domain.Author) error
	deleteFn       func(ctx context.Context, id int64) error
	listFn         func(ctx context.Context, spec store.PaginationSpec) (store.Page[domain.Author], error)
}

var _ store.AuthorStore = (*mockAuthorStore)(nil)

func (m *mockAuthorStore) FindOrCreate(
	ctx context.Context,
	author *domain.Author,
) (*domain.Author, error) {
	return m.findOrCreateFn(ctx, author)
}

func (m *mockAuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockAuthorStore) Update(ctx context.Context, author *domain.Author) error {
	return m.updateFn(ctx, author)
}

func (m *mockAuthorStore) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockAuthorStore) List(
	ctx context.Context,
	spec store.PaginationSpec,
) (store.Page[domain.Author], error) {
	return m.listFn(ctx, spec)
}

func (m *mockAuthorStore) WithTx(_ *sql.Tx) store.AuthorStore { return m }

type mockBookStore struct {
	findOrCreateFn func(ctx context.Context, book *domain.Book) (*domain.Book, error)
	getByIDFn      func(ctx context.Context, id int64) (*domain.Book, error)
	updateFn       func(ctx context.Context, book *domain.Book) error
	deleteFn       func(ctx context.Context, id int64) error
	listFn         func(ctx context.Context, spec store.PaginationSpec) (store.Page[domain.Book], error)
}

var _ store.BookStore = (*mockBookStore)(nil)

func (m *mockBookStore) FindOrCreate(
	ctx context.Context,
	book *domain.Book,
) (*domain.Book, error) {
	return m.findOrCreateFn(ctx, book)
}

func (m *mockBookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockBookStore) Update(ctx context.Context, book *domain.Book) error {
	return m.updateFn(ctx, book)
}

func (m *mockBookStore) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockBookStore) List(
	ctx context.Context,
	spec store.PaginationSpec,
) (store.Page[domain.Book], error) {
	return m.listFn(ctx, spec)
}

func (m *mockBookStore) WithTx(_ *sql.Tx) store.BookStore { return m }

type mockLoanStore struct {
	findOrCreateFn func(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	getByIDFn      func(ctx context.Context, id int64) (*domain.Loan, error)
	listFn         func(ctx context.Context, spec store.PaginationSpec) (store.Page[domain.Loan], error)
}

var _ store.LoanStore = (*mockLoanStore)(nil)

func (m *mockLoanStore) FindOrCreate(
	ctx context.Context,
	loan *domain.Loan,
) (*domain.Loan, error) {
	return m.findOrCreateFn(ctx, loan)
}

func (m *mockLoanStore) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockLoanStore) List(
	ctx context.Context,
	spec store.PaginationSpec,
) (store.Page[domain.Loan], error) {
	return m.listFn(ctx, spec)
}

func (m *mockLoanStore) WithTx(_ *sql.Tx) store.LoanStore { return m }

type mockUserStore struct {
	createFn           func(ctx context.Context, user *domain.User) error
	getByIDFn          func(ctx context.Context, id int64) (*domain.User, error)
	getByEmailDigestFn func(ctx context.Context, digest string) (*domain.User, error)
	updateNameFn       func(ctx context.Context, id int64, name string) error
	deleteFn           func(ctx context.Context, id int64) error
}

var _ store.UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) GetByEmailDigest(
	ctx context.Context,
	digest string,
) (*domain.User, error) {
	return m.getByEmailDigestFn(ctx, digest)
}

func (m *mockUserStore) UpdateName(ctx context.Context, id int64, name string) error {
	return m.updateNameFn(ctx, id, name)
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockUserStore) WithTx(_ *sql.Tx) store.UserStore { return m }

type mockNotifier struct {
	loans []*domain.Loan
	err   error
}

func (m *mockNotifier) LoanCreated(_ context.Context, loan *domain.Loan) error {
	if m.err != nil {
		return m.err
	}
	m.loans = append(m.loans, loan)
	return nil
}

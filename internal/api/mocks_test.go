package api

import (
	"context"

	"github.com/rmachado/library-api/internal/domain"
	"github.com/rmachado/library-api/internal/service"
	"github.com/rmachado/library-api/internal/service/auth"
	"github.com/rmachado/library-api/internal/store"
)

type mockAuthorService struct {
	createFn func(ctx context.Context, name string, birthdate domain.Date) (*domain.Author, error)
	getFn    func(ctx context.Context, id int64) (*domain.Author, error)
	updateFn func(ctx context.Context, id int64, patch domain.AuthorPatch) (*domain.Author, error)
	deleteFn func(ctx context.Context, id int64) error
	listFn   func(ctx context.Context, spec store.PaginationSpec) (store.Page[domain.Author], error)
}

var _ service.AuthorService = (*mockAuthorService)(nil)

func (m *mockAuthorService) Create(
	ctx context.Context,
	name string,
	birthdate domain.Date,
) (*domain.Author, error) {
	return m.createFn(ctx, name, birthdate)
}

func (m *mockAuthorService) Get(ctx context.Context, id int64) (*domain.Author, error) {
	return m.getFn(ctx, id)
}

func (m *mockAuthorService) Update(
	ctx context.Context,
	id int64,
	patch domain.AuthorPatch,
) (*domain.Author, error) {
	return m.updateFn(ctx, id, patch)
}

func (m *mockAuthorService) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockAuthorService) List(
	ctx context.Context,
	spec store.PaginationSpec,
) (store.Page[domain.Author], error) {
	return m.listFn(ctx, spec)
}

type mockBookService struct {
	createFn func(ctx context.Context, title string, publicationYear int, authorID int64) (*domain.Book, error)
	getFn    func(ctx context.Context, id int64) (*domain.Book, error)
	updateFn func(ctx context.Context, id int64, patch domain.BookPatch) (*domain.Book, error)
	deleteFn func(ctx context.Context, id int64) error
	listFn   func(ctx context.Context, spec store.PaginationSpec) (store.Page[domain.Book], error)
}

var _ service.BookService = (*mockBookService)(nil)

func (m *mockBookService) Create(
	ctx context.Context,
	title string,
	publicationYear int,
	authorID int64,
) (*domain.Book, error) {
	return m.createFn(ctx, title, publicationYear, authorID)
}

func (m *mockBookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return m.getFn(ctx, id)
}

func (m *mockBookService) Update(
	ctx context.Context,
	id int64,
	patch domain.BookPatch,
) (*domain.Book, error) {
	return m.updateFn(ctx, id, patch)
}

func (m *mockBookService) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockBookService) List(
	ctx context.Context,
	spec store.PaginationSpec,
) (store.Page[domain.Book], error) {
	return m.listFn(ctx, spec)
}

type mockLoanService struct {
	createFn func(ctx context.Context, userID, bookID int64, loanDate, returnDate domain.Date) (*domain.Loan, error)
	getFn    func(ctx context.Context, id int64) (*domain.Loan, error)
	listFn   func(ctx context.Context, spec store.PaginationSpec) (store.Page[domain.Loan], error)
}

var _ service.LoanService = (*mockLoanService)(nil)

func (m *mockLoanService) Create(
	ctx context.Context,
	userID, bookID int64,
	loanDate, returnDate domain.Date,
) (*domain.Loan, error) {
	return m.createFn(ctx, userID, bookID, loanDate, returnDate)
}

func (m *mockLoanService) Get(ctx context.Context, id int64) (*domain.Loan, error) {
	return m.getFn(ctx, id)
}

func (m *mockLoanService) List(
	ctx context.Context,
	spec store.PaginationSpec,
) (store.Page[domain.Loan], error) {
	return m.listFn(ctx, spec)
}

type mockUserService struct {
	signUpFn         func(ctx context.Context, email, password, name string) (*domain.User, error)
	signInFn         func(ctx context.Context, email, password string) (string, error)
	signOutFn        func(ctx context.Context, claims *auth.Claims) error
	getUserFn        func(ctx context.Context, userID int64) (*domain.User, error)
	updateUserNameFn func(ctx context.Context, userID int64, name string) (*domain.User, error)
	deleteUserFn     func(ctx context.Context, userID int64, password string) error
}

var _ service.UserService = (*mockUserService)(nil)

func (m *mockUserService) SignUp(
	ctx context.Context,
	email, password, name string,
) (*domain.User, error) {
	return m.signUpFn(ctx, email, password, name)
}

func (m *mockUserService) SignIn(ctx context.Context, email, password string) (string, error) {
	return m.signInFn(ctx, email, password)
}

func (m *mockUserService) SignOut(ctx context.Context, claims *auth.Claims) error {
	return m.signOutFn(ctx, claims)
}

func (m *mockUserService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockUserService) UpdateUserName(
	ctx context.Context,
	userID int64,
	name string,
) (*domain.User, error) {
	return m.updateUserNameFn(ctx, userID, name)
}

func (m *mockUserService) DeleteUser(ctx context.Context, userID int64, password string) error {
	return m.deleteUserFn(ctx, userID, password)
}

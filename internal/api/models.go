package api

// Request models with validation tags. Field bounds mirror the domain
// validation rules so most bad input is rejected before a service call.

// SignupRequest is the request body for POST /signup.
type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50"`
	Name     string `json:"name"     validate:"required,min=3,max=100"`
}

// SigninRequest is the request body for POST /signin.
type SigninRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SigninResponse carries the minted access token.
type SigninResponse struct {
	Token string `json:"token"`
}

// UserResponse is the public projection of a user. Neither the email digest
// nor the password hash ever leaves the server.
type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UpdateUserNameRequest is the request body for PUT /updateUserName.
type UpdateUserNameRequest struct {
	Name string `json:"name" validate:"required,min=3,max=100"`
}

// DeleteUserRequest is the request body for DELETE /deleteUser.
type DeleteUserRequest struct {
	Password string `json:"password" validate:"required"`
}

// CreateAuthorRequest is the request body for POST /createAuthor.
type CreateAuthorRequest struct {
	Name      string `json:"name"      validate:"required,min=3,max=100"`
	Birthdate string `json:"birthdate" validate:"required"`
}

// UpdateAuthorRequest is the request body for PUT /updateAuthor. Absent
// optional fields leave the stored value untouched.
type UpdateAuthorRequest struct {
	ID        int64   `json:"id"        validate:"required,gt=0"`
	Name      *string `json:"name"      validate:"omitempty,min=3,max=100"`
	Birthdate *string `json:"birthdate" validate:"omitempty"`
}

// DeleteAuthorRequest is the request body for DELETE /deleteAuthor.
type DeleteAuthorRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// CreateBookRequest is the request body for POST /createBook.
type CreateBookRequest struct {
	Title           string `json:"title"            validate:"required,max=500"`
	PublicationYear int    `json:"publication_year" validate:"required,min=1000,max=9999"`
	AuthorID        int64  `json:"author_id"        validate:"required,gt=0"`
}

// UpdateBookRequest is the request body for PUT /updateBook. The publication
// year is always resubmitted; title and author are optional.
type UpdateBookRequest struct {
	ID              int64   `json:"id"               validate:"required,gt=0"`
	PublicationYear int     `json:"publication_year" validate:"required,min=1000,max=9999"`
	Title           *string `json:"title"            validate:"omitempty,max=500"`
	AuthorID        *int64  `json:"author_id"        validate:"omitempty,gt=0"`
}

// DeleteBookRequest is the request body for DELETE /deleteBook.
type DeleteBookRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// CreateLoanRequest is the request body for POST /createLoan. The borrowing
// user is always the authenticated caller.
type CreateLoanRequest struct {
	BookID     int64  `json:"book_id"     validate:"required,gt=0"`
	LoanDate   string `json:"loan_date"   validate:"required"`
	ReturnDate string `json:"return_date" validate:"required"`
}

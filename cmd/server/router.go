package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rmachado/library-api/internal/api"
	apiMiddleware "github.com/rmachado/library-api/internal/api/middleware"
	"github.com/rmachado/library-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	userHandler := api.NewUserHandler(app.userService)
	authorHandler := api.NewAuthorHandler(app.authorService)
	bookHandler := api.NewBookHandler(app.bookService)
	loanHandler := api.NewLoanHandler(app.loanService)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.denylist)
	limiter := apiMiddleware.NewRateLimiter(
		app.config.Server.RateLimitRPS,
		app.config.Server.RateLimitBurst,
	)

	// Public endpoints, rate limited per client IP.
	r.Group(func(r chi.Router) {
		r.Use(limiter.Limit)
		r.Post("/signup", userHandler.SignUp)
		r.Post("/signin", userHandler.SignIn)
	})

	// Everything else requires a valid, non-revoked token.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/signout", userHandler.SignOut)
		r.Get("/getUser", userHandler.GetUser)
		r.Put("/updateUserName", userHandler.UpdateUserName)
		r.Delete("/deleteUser", userHandler.DeleteUser)

		r.Post("/createAuthor", authorHandler.Create)
		r.Get("/getAuthors", authorHandler.List)
		r.Put("/updateAuthor", authorHandler.Update)
		r.Delete("/deleteAuthor", authorHandler.Delete)

		r.Post("/createBook", bookHandler.Create)
		r.Get("/getBooks", bookHandler.List)
		r.Put("/updateBook", bookHandler.Update)
		r.Delete("/deleteBook", bookHandler.Delete)

		r.Post("/createLoan", loanHandler.Create)
		r.Get("/getLoans", loanHandler.List)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithMessage(w, r, http.StatusOK, "ok")
	})

	return r
}

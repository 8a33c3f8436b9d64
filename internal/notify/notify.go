// Package notify publishes domain event notifications to downstream
// consumers. The only event today is loan creation, which the mailer
// consumes to send the confirmation email.
package notify

import (
	"context"

	"github.com/rmachado/library-api/internal/domain"
)

// Notifier publishes notifications for domain events.
type Notifier interface {
	// LoanCreated announces a newly created loan.
	LoanCreated(ctx context.Context, loan *domain.Loan) error
}

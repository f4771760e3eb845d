package domain

import (
	"context"
	"strings"
	"time"
)

// ContactTable is the collection every backend writes submissions to.
const ContactTable = "contact_messages"

// ContactSubmission represents a contact form submission
type ContactSubmission struct {
	Name    string `json:"name" validate:"required,max=100,single_line"`
	Email   string `json:"email" validate:"required,max=254,email"`
	Subject string `json:"subject" validate:"required,max=200,single_line"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Normalize trims surrounding whitespace from every field.
func (s *ContactSubmission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)
}

// ContactRecord is the row echoed back by the store after an insert.
type ContactRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactResult is the outcome of a submission returned to the client.
type ContactResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	EmailSent bool   `json:"emailSent"`
}

// ContactRepository persists submissions into ContactTable.
type ContactRepository interface {
	Insert(ctx context.Context, submission *ContactSubmission) (*ContactRecord, error)
}

// Notifier sends the acknowledgment email. It reports delivery instead of failing.
type Notifier interface {
	SendAcknowledgment(ctx context.Context, recipientEmail, name, subject, message string) bool
}

// SubmissionGuard deduplicates submissions carrying the same client token.
type SubmissionGuard interface {
	// Claim returns false when key was already claimed and has not expired.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates, stores and acknowledges a contact form submission.
	// idempotencyKey may be empty.
	Submit(ctx context.Context, submission *ContactSubmission, idempotencyKey string) (*ContactResult, error)
}

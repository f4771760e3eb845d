package usecase

import (
	"context"
	"errors"
	"time"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/logger"
	"go-portfolio-site/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// AcknowledgmentMessage is returned to the client after a stored submission.
const AcknowledgmentMessage = "Thank you for your message! I'll get back to you soon."

type contactUsecase struct {
	repo     domain.ContactRepository
	notifier domain.Notifier
	guard    domain.SubmissionGuard
	guardTTL time.Duration
	validate *validator.Validate
}

// NewContactUsecase creates a new contact usecase. guard may be nil to disable
// duplicate detection.
func NewContactUsecase(repo domain.ContactRepository, notifier domain.Notifier, guard domain.SubmissionGuard, guardTTL time.Duration, validate *validator.Validate) domain.ContactUsecase {
	return &contactUsecase{
		repo:     repo,
		notifier: notifier,
		guard:    guard,
		guardTTL: guardTTL,
		validate: validate,
	}
}

// Submit validates the submission, stores it, then sends the acknowledgment.
// Only a stored submission is acknowledged; a failed acknowledgment never fails the call.
func (uc *contactUsecase) Submit(ctx context.Context, submission *domain.ContactSubmission, idempotencyKey string) (*domain.ContactResult, error) {
	if err := validateSubmission(ctx, uc.validate, submission); err != nil {
		return nil, err
	}

	// The request may be abandoned by the client; the insert and the email still run to completion.
	ctx = context.WithoutCancel(ctx)

	claimed := false
	if uc.guard != nil && idempotencyKey != "" {
		ok, err := uc.guard.Claim(ctx, idempotencyKey, uc.guardTTL)
		switch {
		case err != nil:
			logger.Log.Warn("Submission guard unavailable, continuing without duplicate check", "error", err)
		case !ok:
			return nil, domain.ErrDuplicateSubmission
		default:
			claimed = true
		}
	}

	record, err := uc.repo.Insert(ctx, submission)
	if err != nil {
		if claimed {
			if relErr := uc.guard.Release(ctx, idempotencyKey); relErr != nil {
				logger.Log.Warn("Failed to release submission claim", "error", relErr)
			}
		}
		var cfgErr *domain.ConfigError
		if errors.As(err, &cfgErr) {
			logger.Log.Error("Contact store is not configured", "error", err)
		} else {
			logger.Log.Error("Failed to store contact submission", "error", err)
		}
		return nil, err
	}
	logger.Log.Info("Contact submission stored", "record_id", record.ID)

	emailSent := uc.notifier.SendAcknowledgment(ctx, submission.Email, submission.Name, submission.Subject, submission.Message)

	return &domain.ContactResult{
		Success:   true,
		Message:   AcknowledgmentMessage,
		EmailSent: emailSent,
	}, nil
}

// validateSubmission trims the submission in place and checks it.
func validateSubmission(ctx context.Context, validate *validator.Validate, submission *domain.ContactSubmission) error {
	submission.Normalize()
	if err := validate.StructCtx(ctx, submission); err != nil {
		return &domain.ValidationError{Fields: validation.FormatValidationErrors(err)}
	}
	return nil
}

type unavailableContactUsecase struct {
	err      error
	validate *validator.Validate
}

// NewUnavailableContactUsecase answers every valid submission with err. It is wired in
// when the store or mailer could not be constructed, so no dependency is ever called.
// Invalid submissions still get their validation error first.
func NewUnavailableContactUsecase(err error, validate *validator.Validate) domain.ContactUsecase {
	return &unavailableContactUsecase{err: err, validate: validate}
}

func (uc *unavailableContactUsecase) Submit(ctx context.Context, submission *domain.ContactSubmission, _ string) (*domain.ContactResult, error) {
	if err := validateSubmission(ctx, uc.validate, submission); err != nil {
		return nil, err
	}
	return nil, uc.err
}

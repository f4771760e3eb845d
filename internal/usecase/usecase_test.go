package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/internal/repository/memory"
	"go-portfolio-site/internal/usecase"
	"go-portfolio-site/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock dependencies
type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Insert(ctx context.Context, submission *domain.ContactSubmission) (*domain.ContactRecord, error) {
	args := m.Called(ctx, submission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactRecord), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendAcknowledgment(ctx context.Context, recipientEmail, name, subject, message string) bool {
	return m.Called(ctx, recipientEmail, name, subject, message).Bool(0)
}

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func validSubmission() *domain.ContactSubmission {
	return &domain.ContactSubmission{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hi",
		Message: "Hello",
	}
}

func TestContactSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report emailSent false when acknowledgment fails", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		repo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ContactSubmission")).Return(&domain.ContactRecord{ID: "1"}, nil)
		notifier.On("SendAcknowledgment", mock.Anything, "ada@example.com", "Ada", "Hi", "Hello").Return(false)

		uc := usecase.NewContactUsecase(repo, notifier, nil, 0, validation.New())
		result, err := uc.Submit(ctx, validSubmission(), "")

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.False(t, result.EmailSent)
		assert.Equal(t, usecase.AcknowledgmentMessage, result.Message)
		repo.AssertNumberOfCalls(t, "Insert", 1)
		notifier.AssertNumberOfCalls(t, "SendAcknowledgment", 1)
	})

	t.Run("Should report emailSent true when acknowledgment is delivered", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		repo.On("Insert", mock.Anything, mock.Anything).Return(&domain.ContactRecord{ID: "1"}, nil)
		notifier.On("SendAcknowledgment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true)

		uc := usecase.NewContactUsecase(repo, notifier, nil, 0, validation.New())
		result, err := uc.Submit(ctx, validSubmission(), "")

		require.NoError(t, err)
		assert.True(t, result.EmailSent)
	})

	t.Run("Should trim fields before storing and notifying", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		repo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.ContactSubmission")).Return(&domain.ContactRecord{ID: "1"}, nil).Run(func(args mock.Arguments) {
			s := args.Get(1).(*domain.ContactSubmission)
			assert.Equal(t, "Ada", s.Name)
			assert.Equal(t, "ada@example.com", s.Email)
		})
		notifier.On("SendAcknowledgment", mock.Anything, "ada@example.com", "Ada", "Hi", "Hello").Return(true)

		uc := usecase.NewContactUsecase(repo, notifier, nil, 0, validation.New())
		_, err := uc.Submit(ctx, &domain.ContactSubmission{
			Name: "  Ada ", Email: " ada@example.com\n", Subject: "Hi ", Message: "\tHello",
		}, "")

		require.NoError(t, err)
		notifier.AssertExpectations(t)
	})

	t.Run("Should fail validation without touching store or mail when email is missing", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)

		sub := validSubmission()
		sub.Email = "   "

		uc := usecase.NewContactUsecase(repo, notifier, nil, 0, validation.New())
		result, err := uc.Submit(ctx, sub, "")

		assert.Nil(t, result)
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Contains(t, vErr.Fields, "Email: field required")
		repo.AssertNumberOfCalls(t, "Insert", 0)
		notifier.AssertNumberOfCalls(t, "SendAcknowledgment", 0)
	})

	t.Run("Should reject malformed email and multi-line subject", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)

		sub := validSubmission()
		sub.Email = "ada-at-example"
		sub.Subject = "Hi\nBcc: victim@example.com"

		uc := usecase.NewContactUsecase(repo, notifier, nil, 0, validation.New())
		_, err := uc.Submit(ctx, sub, "")

		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Len(t, vErr.Fields, 2)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Should skip acknowledgment when store insert fails", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		storeErr := &domain.StoreError{Backend: "supabase", Status: 500, Err: errors.New("boom")}
		repo.On("Insert", mock.Anything, mock.Anything).Return(nil, storeErr)

		uc := usecase.NewContactUsecase(repo, notifier, nil, 0, validation.New())
		result, err := uc.Submit(ctx, validSubmission(), "")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, storeErr)
		notifier.AssertNumberOfCalls(t, "SendAcknowledgment", 0)
	})

	t.Run("Should still store and notify after the caller cancels", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		repo.On("Insert", mock.Anything, mock.Anything).Return(&domain.ContactRecord{ID: "1"}, nil).Run(func(args mock.Arguments) {
			assert.NoError(t, args.Get(0).(context.Context).Err())
		})
		notifier.On("SendAcknowledgment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		uc := usecase.NewContactUsecase(repo, notifier, nil, 0, validation.New())
		result, err := uc.Submit(cancelled, validSubmission(), "")

		require.NoError(t, err)
		assert.True(t, result.Success)
	})
}

func TestContactSubmitDuplicateGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a repeated idempotency key", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		repo.On("Insert", mock.Anything, mock.Anything).Return(&domain.ContactRecord{ID: "1"}, nil)
		notifier.On("SendAcknowledgment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true)

		uc := usecase.NewContactUsecase(repo, notifier, memory.NewSubmissionGuard(), time.Minute, validation.New())

		_, err := uc.Submit(ctx, validSubmission(), "token-1")
		require.NoError(t, err)

		_, err = uc.Submit(ctx, validSubmission(), "token-1")
		assert.ErrorIs(t, err, domain.ErrDuplicateSubmission)
		repo.AssertNumberOfCalls(t, "Insert", 1)
		notifier.AssertNumberOfCalls(t, "SendAcknowledgment", 1)
	})

	t.Run("Should release the claim when the insert fails", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		guard := new(MockGuard)
		guard.On("Claim", mock.Anything, "token-2", time.Minute).Return(true, nil)
		guard.On("Release", mock.Anything, "token-2").Return(nil)
		repo.On("Insert", mock.Anything, mock.Anything).Return(nil, &domain.StoreError{Backend: "sqlite", Err: errors.New("disk full")})

		uc := usecase.NewContactUsecase(repo, notifier, guard, time.Minute, validation.New())
		_, err := uc.Submit(ctx, validSubmission(), "token-2")

		assert.Error(t, err)
		guard.AssertExpectations(t)
	})

	t.Run("Should proceed when the guard backend is down", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		guard := new(MockGuard)
		guard.On("Claim", mock.Anything, "token-3", time.Minute).Return(false, errors.New("redis: connection refused"))
		repo.On("Insert", mock.Anything, mock.Anything).Return(&domain.ContactRecord{ID: "1"}, nil)
		notifier.On("SendAcknowledgment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true)

		uc := usecase.NewContactUsecase(repo, notifier, guard, time.Minute, validation.New())
		result, err := uc.Submit(ctx, validSubmission(), "token-3")

		require.NoError(t, err)
		assert.True(t, result.Success)
		guard.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	})

	t.Run("Should ignore the guard when no key is sent", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		guard := new(MockGuard)
		repo.On("Insert", mock.Anything, mock.Anything).Return(&domain.ContactRecord{ID: "1"}, nil)
		notifier.On("SendAcknowledgment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true)

		uc := usecase.NewContactUsecase(repo, notifier, guard, time.Minute, validation.New())
		_, err := uc.Submit(ctx, validSubmission(), "")

		require.NoError(t, err)
		guard.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUnavailableContactUsecase(t *testing.T) {
	cfgErr := &domain.ConfigError{Component: "supabase store", Missing: []string{"SUPABASE_KEY"}}
	uc := usecase.NewUnavailableContactUsecase(cfgErr, validation.New())

	t.Run("Should answer a valid submission with the configuration error", func(t *testing.T) {
		result, err := uc.Submit(context.Background(), validSubmission(), "")
		assert.Nil(t, result)
		assert.Same(t, cfgErr, err)
	})

	t.Run("Should report validation errors first", func(t *testing.T) {
		sub := validSubmission()
		sub.Email = ""

		result, err := uc.Submit(context.Background(), sub, "")
		assert.Nil(t, result)
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Contains(t, vErr.Fields, "Email: field required")
	})
}

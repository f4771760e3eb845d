package postgres

import (
	"context"

	"go-portfolio-site/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type contactRepo struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) domain.ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Insert(ctx context.Context, submission *domain.ContactSubmission) (*domain.ContactRecord, error) {
	query := `INSERT INTO contact_messages (name, email, subject, message)
              VALUES ($1, $2, $3, $4) RETURNING id::text, created_at`

	record := domain.ContactRecord{
		Name:    submission.Name,
		Email:   submission.Email,
		Subject: submission.Subject,
		Message: submission.Message,
	}
	err := r.db.QueryRow(ctx, query,
		submission.Name, submission.Email, submission.Subject, submission.Message,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return nil, &domain.StoreError{Backend: "postgres", Err: err}
	}
	return &record, nil
}

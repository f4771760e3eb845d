package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"go-portfolio-site/internal/domain"
)

type contactRepo struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) domain.ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Insert(ctx context.Context, submission *domain.ContactSubmission) (*domain.ContactRecord, error) {
	createdAt := time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, subject, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		submission.Name, submission.Email, submission.Subject, submission.Message, createdAt,
	)
	if err != nil {
		return nil, &domain.StoreError{Backend: "sqlite", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, &domain.StoreError{Backend: "sqlite", Err: err}
	}

	return &domain.ContactRecord{
		ID:        strconv.FormatInt(id, 10),
		Name:      submission.Name,
		Email:     submission.Email,
		Subject:   submission.Subject,
		Message:   submission.Message,
		CreatedAt: createdAt,
	}, nil
}

package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-portfolio-site/internal/domain"
)

const backendName = "supabase"

type contactRepo struct {
	endpoint string
	key      string
	client   *http.Client
}

// NewContactRepository talks to the PostgREST API of a Supabase project.
// A nil client gets a default one bounded by timeout.
func NewContactRepository(url, key string, timeout time.Duration, client *http.Client) (domain.ContactRepository, error) {
	var missing []string
	if url == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if key == "" {
		missing = append(missing, "SUPABASE_KEY")
	}
	if len(missing) > 0 {
		return nil, &domain.ConfigError{Component: "supabase store", Missing: missing}
	}

	if client == nil {
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &contactRepo{
		endpoint: fmt.Sprintf("%s/rest/v1/%s", strings.TrimRight(url, "/"), domain.ContactTable),
		key:      key,
		client:   client,
	}, nil
}

type insertRow struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// contactRow is a returned row; id may be numeric or a uuid depending on the table.
type contactRow struct {
	insertRow
	ID        json.RawMessage `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
}

// postgrestError is the error body PostgREST returns.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint"`
}

func (r *contactRepo) Insert(ctx context.Context, submission *domain.ContactSubmission) (*domain.ContactRecord, error) {
	payload, err := json.Marshal(insertRow{
		Name:    submission.Name,
		Email:   submission.Email,
		Subject: submission.Subject,
		Message: submission.Message,
	})
	if err != nil {
		return nil, &domain.StoreError{Backend: backendName, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.StoreError{Backend: backendName, Err: err}
	}
	req.Header.Set("apikey", r.key)
	req.Header.Set("Authorization", "Bearer "+r.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &domain.StoreError{Backend: backendName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &domain.StoreError{Backend: backendName, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.StoreError{Backend: backendName, Status: resp.StatusCode, Err: decodeError(body)}
	}

	var rows []contactRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &domain.StoreError{Backend: backendName, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(rows) == 0 {
		return nil, &domain.StoreError{Backend: backendName, Status: resp.StatusCode, Err: errors.New("insert returned no rows")}
	}

	row := rows[0]
	return &domain.ContactRecord{
		ID:        strings.Trim(string(row.ID), `"`),
		Name:      row.Name,
		Email:     row.Email,
		Subject:   row.Subject,
		Message:   row.Message,
		CreatedAt: row.CreatedAt,
	}, nil
}

func decodeError(body []byte) error {
	var pgErr postgrestError
	if err := json.Unmarshal(body, &pgErr); err == nil && pgErr.Message != "" {
		if pgErr.Code != "" {
			return fmt.Errorf("%s: %s", pgErr.Code, pgErr.Message)
		}
		return errors.New(pgErr.Message)
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	if text == "" {
		text = "empty response body"
	}
	return errors.New(text)
}

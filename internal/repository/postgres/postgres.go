package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"volunteer-backend/internal/repository"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// NewStore wires the PostgreSQL-backed repositories onto a shared pool
func NewStore(db *sql.DB) *repository.Store {
	return &repository.Store{
		Posts:    NewPostRepository(db),
		Requests: NewVolunteerRequestRepository(db),
		Contacts: NewContactMessageRepository(db),
		Health:   &healthChecker{db: db},
	}
}

type healthChecker struct {
	db *sql.DB
}

func (h *healthChecker) Ping(ctx context.Context) error {
	return h.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func encodeExtra(extra map[string]any) (string, error) {
	if len(extra) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(extra)
	if err != nil {
		return "", fmt.Errorf("encode extra fields: %w", err)
	}
	return string(b), nil
}

func decodeExtra(raw []byte) (map[string]any, error) {
	if len(raw) == 0 || string(raw) == "{}" {
		return nil, nil
	}
	var extra map[string]any
	if err := json.Unmarshal(raw, &extra); err != nil {
		return nil, fmt.Errorf("decode extra fields: %w", err)
	}
	return extra, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

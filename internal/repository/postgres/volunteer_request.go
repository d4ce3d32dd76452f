package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/repository"

	"github.com/google/uuid"
)

const requestColumns = `id, post_id, post_title, volunteer_name, volunteer_email, organizer_name, organizer_email, suggestion, status, extra, created_on`

type volunteerRequestRepository struct {
	db *sql.DB
}

func NewVolunteerRequestRepository(db *sql.DB) repository.VolunteerRequestRepository {
	return &volunteerRequestRepository{db: db}
}

func scanRequest(row rowScanner) (*domain.VolunteerRequest, error) {
	req := &domain.VolunteerRequest{}
	var extra []byte
	err := row.Scan(&req.ID, &req.PostID, &req.PostTitle, &req.VolunteerName, &req.VolunteerEmail,
		&req.OrganizerName, &req.OrganizerEmail, &req.Suggestion, &req.Status, &extra, &req.CreatedAt)
	if err != nil {
		return nil, err
	}
	if req.Extra, err = decodeExtra(extra); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *volunteerRequestRepository) GetByID(ctx context.Context, id string) (*domain.VolunteerRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM volunteer_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("volunteer request %s: %w", id, domain.ErrRequestNotFound)
	}
	return req, err
}

func (r *volunteerRequestRepository) ListByVolunteer(ctx context.Context, email string) ([]domain.VolunteerRequest, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM volunteer_requests WHERE volunteer_email = $1 ORDER BY created_on`, email)
}

func (r *volunteerRequestRepository) ListByOrganizer(ctx context.Context, email string) ([]domain.VolunteerRequest, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM volunteer_requests WHERE organizer_email = $1 ORDER BY created_on`, email)
}

func (r *volunteerRequestRepository) list(ctx context.Context, query string, args ...any) ([]domain.VolunteerRequest, error) {
	logger.DatabaseCall(ctx, "find", "volunteer_requests")
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult(ctx, "find", 0, err)
		return nil, err
	}
	defer rows.Close()

	reqs := []domain.VolunteerRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult(ctx, "find", int64(len(reqs)), nil)
	return reqs, nil
}

func (r *volunteerRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.WriteResult, error) {
	var previous domain.RequestStatus
	err := r.db.QueryRowContext(ctx, `SELECT status FROM volunteer_requests WHERE id = $1`, id).Scan(&previous)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UpdateResult(0, 0), nil
	}
	if err != nil {
		return nil, err
	}
	if previous == status {
		return domain.UpdateResult(1, 0), nil
	}

	logger.DatabaseCall(ctx, "update", "volunteer_requests", "id", id, "status", status)
	res, err := r.db.ExecContext(ctx, `UPDATE volunteer_requests SET status = $1 WHERE id = $2`, status, id)
	n := rowsAffected(res)
	logger.DatabaseResult(ctx, "update", n, err)
	if err != nil {
		return nil, err
	}
	return domain.UpdateResult(n, n), nil
}

// CreateAndReserve decrements the post counter only while it is positive, then
// inserts the application. Either both writes commit or neither does.
func (r *volunteerRequestRepository) CreateAndReserve(ctx context.Context, req *domain.VolunteerRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	logger.DatabaseCall(ctx, "reserve", "posts", "post_id", req.PostID)
	var post domain.Post
	err = tx.QueryRowContext(ctx,
		`UPDATE posts SET volunteers_needed = volunteers_needed - 1
		 WHERE id = $1 AND volunteers_needed > 0
		 RETURNING id, post_title, organizer_name, organizer_email`, req.PostID).
		Scan(&post.ID, &post.PostTitle, &post.Organizer.Name, &post.Organizer.Email)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, req.PostID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("post %s: %w", req.PostID, domain.ErrNotFound)
		}
		return domain.ErrNoCapacity
	}
	if err != nil {
		return err
	}

	req.ReserveFrom(&post)
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = domain.RequestStatusPending
	}
	req.CreatedAt = time.Now().UTC()
	extra, err := encodeExtra(req.Extra)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO volunteer_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		req.ID, req.PostID, req.PostTitle, req.VolunteerName, req.VolunteerEmail,
		req.OrganizerName, req.OrganizerEmail, req.Suggestion, req.Status, extra, req.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyApplied
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.DatabaseResult(ctx, "reserve", 1, nil, "request_id", req.ID)
	return nil
}

// DeleteAndRelease locks the application, lets authorize veto, deletes it and
// returns its slot to the post. A deleted post is left alone.
func (r *volunteerRequestRepository) DeleteAndRelease(ctx context.Context, id string, authorize repository.AuthorizeFunc) (*domain.VolunteerRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	req, err := scanRequest(tx.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM volunteer_requests WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}

	if authorize != nil {
		if err := authorize(req); err != nil {
			return nil, err
		}
	}

	logger.DatabaseCall(ctx, "release", "volunteer_requests", "id", id, "post_id", req.PostID)
	res, err := tx.ExecContext(ctx, `DELETE FROM volunteer_requests WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if rowsAffected(res) == 0 {
		return nil, domain.ErrRequestNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE posts SET volunteers_needed = volunteers_needed + 1 WHERE id = $1`, req.PostID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	logger.DatabaseResult(ctx, "release", 1, nil)
	return req, nil
}

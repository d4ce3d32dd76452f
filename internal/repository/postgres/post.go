package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/repository"

	"github.com/google/uuid"
)

const postColumns = `id, post_title, description, category, location, thumbnail, deadline, organizer_name, organizer_email, volunteers_needed, extra, created_on`

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &postRepository{db: db}
}

func scanPost(row rowScanner) (*domain.Post, error) {
	p := &domain.Post{}
	var extra []byte
	err := row.Scan(&p.ID, &p.PostTitle, &p.Description, &p.Category, &p.Location, &p.Thumbnail,
		&p.Deadline, &p.Organizer.Name, &p.Organizer.Email, &p.VolunteersNeeded, &extra, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if p.Extra, err = decodeExtra(extra); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postRepository) Create(ctx context.Context, p *domain.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()
	extra, err := encodeExtra(p.Extra)
	if err != nil {
		return err
	}

	query := `INSERT INTO posts (` + postColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	logger.DatabaseCall(ctx, "insert", "posts", "id", p.ID)
	res, err := r.db.ExecContext(ctx, query, p.ID, p.PostTitle, p.Description, p.Category, p.Location, p.Thumbnail,
		p.Deadline, p.Organizer.Name, p.Organizer.Email, p.VolunteersNeeded, extra, p.CreatedAt)
	logger.DatabaseResult(ctx, "insert", rowsAffected(res), err)
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	p, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	return p, err
}

func (r *postRepository) Search(ctx context.Context, titleContains string) ([]domain.Post, error) {
	if titleContains == "" {
		return r.list(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_on`)
	}
	return r.list(ctx, `SELECT `+postColumns+` FROM posts WHERE post_title ILIKE $1 ORDER BY created_on`,
		domain.PostSearchPattern(titleContains))
}

func (r *postRepository) ListSoonestDeadline(ctx context.Context, limit int) ([]domain.Post, error) {
	return r.list(ctx, `SELECT `+postColumns+` FROM posts ORDER BY deadline ASC LIMIT $1`, limit)
}

func (r *postRepository) ListByOrganizer(ctx context.Context, email string) ([]domain.Post, error) {
	return r.list(ctx, `SELECT `+postColumns+` FROM posts WHERE organizer_email = $1 ORDER BY deadline`, email)
}

func (r *postRepository) CountExpiringBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM posts WHERE deadline >= $1 AND deadline < $2`
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&count)
	return count, err
}

func (r *postRepository) list(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	logger.DatabaseCall(ctx, "find", "posts", "args", len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult(ctx, "find", 0, err)
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult(ctx, "find", int64(len(posts)), nil)
	return posts, nil
}

// Update writes only the supplied fields so concurrent counter adjustments survive
func (r *postRepository) Update(ctx context.Context, id string, patch *domain.PostPatch) (*domain.WriteResult, error) {
	if patch.IsEmpty() {
		var exists bool
		err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return nil, err
		}
		if exists {
			return domain.UpdateResult(1, 0), nil
		}
		return domain.UpdateResult(0, 0), nil
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.PostTitle != nil {
		add("post_title", *patch.PostTitle)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Thumbnail != nil {
		add("thumbnail", *patch.Thumbnail)
	}
	if patch.Deadline != nil {
		add("deadline", *patch.Deadline)
	}
	if patch.VolunteersNeeded != nil {
		add("volunteers_needed", *patch.VolunteersNeeded)
	}
	if len(patch.Extra) > 0 {
		extra, err := encodeExtra(patch.Extra)
		if err != nil {
			return nil, err
		}
		args = append(args, extra)
		sets = append(sets, fmt.Sprintf("extra = extra || $%d::jsonb", len(args)))
	}


	args = append(args, id)
	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	logger.DatabaseCall(ctx, "update", "posts", "id", id, "fields", len(sets))
	res, err := r.db.ExecContext(ctx, query, args...)
	n := rowsAffected(res)
	logger.DatabaseResult(ctx, "update", n, err)
	if err != nil {
		return nil, err
	}
	return domain.UpdateResult(n, n), nil
}

func (r *postRepository) Delete(ctx context.Context, id string) (*domain.WriteResult, error) {
	logger.DatabaseCall(ctx, "delete", "posts", "id", id)
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	n := rowsAffected(res)
	logger.DatabaseResult(ctx, "delete", n, err)
	if err != nil {
		return nil, err
	}
	return domain.DeleteResult(n), nil
}

func rowsAffected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

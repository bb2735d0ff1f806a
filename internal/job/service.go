package job

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"gigboard/marketplace-service/internal/auth"
	"gigboard/marketplace-service/internal/cache"
	"gigboard/marketplace-service/internal/model"
)

const jobColumns = `id, title, description, budget, category, skills, status,
	owner_user_id, created_at, updated_at`

// Service encapsulates all job business logic. It has no dependency on
// net/http — it can be used by any transport layer.
type Service struct {
	pool     *pgxpool.Pool
	rdb      *redis.Client
	listings *cache.Listings
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool, rdb *redis.Client, listings *cache.Listings) *Service {
	return &Service{pool: pool, rdb: rdb, listings: listings}
}

// Filters narrows a job listing. Empty fields match everything.
type Filters struct {
	Category string
	Status   string
	Search   string // substring match on title or description
}

// CreateInput carries the fields of a new job posting.
type CreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Budget      float64  `json:"budget"`
	Category    string   `json:"category"`
	Skills      []string `json:"skills"`
}

// UpdateInput carries owner edits; nil pointers mean "unchanged".
type UpdateInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"`
	Category    *string  `json:"category"`
	Skills      []string `json:"skills"`
	Status      *string  `json:"status"`
}

// ValidateCreate checks the required fields of a new posting.
func ValidateCreate(in CreateInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return &model.ValidationError{Msg: "title is required"}
	case strings.TrimSpace(in.Description) == "":
		return &model.ValidationError{Msg: "description is required"}
	case in.Budget <= 0:
		return &model.ValidationError{Msg: "budget is required and must be positive"}
	case strings.TrimSpace(in.Category) == "":
		return &model.ValidationError{Msg: "category is required"}
	}
	return nil
}

// Create inserts a new job owned by ownerID, starting at OPEN.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*model.Job, error) {
	if err := ValidateCreate(in); err != nil {
		return nil, err
	}
	if in.Skills == nil {
		in.Skills = []string{}
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, description, budget, category, skills, owner_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+jobColumns,
		in.Title, in.Description, in.Budget, in.Category, in.Skills, ownerID,
	)
	j, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.listings.Invalidate(ctx)
	s.publish(ctx, "EVENT_JOB_CREATED", map[string]string{
		"jobId":   j.ID,
		"ownerId": ownerID,
	})
	return j, nil
}

// List returns jobs matching the filters, newest first. Listing reads go
// through the Redis cache; misses fall back to SQL and prime the cache.
func (s *Service) List(ctx context.Context, f Filters) ([]model.Job, error) {
	if f.Status != "" {
		if _, err := ParseStatus(f.Status); err != nil {
			return nil, &model.ValidationError{Msg: err.Error()}
		}
	}

	if jobs, ok := s.listings.Get(ctx, f.Category, f.Status, f.Search); ok {
		return jobs, nil
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	var (
		conds []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs query: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("list jobs scan: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs rows: %w", err)
	}

	s.listings.Set(ctx, f.Category, f.Status, f.Search, jobs)
	return jobs, nil
}

// Get returns a single job by id.
func (s *Service) Get(ctx context.Context, jobID string) (*model.Job, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID)
	j, err := scanJob(row)
	if err != nil {
		// Covers ErrNoRows and malformed ids alike.
		return nil, model.ErrNotFound
	}
	return j, nil
}

// Update applies owner edits to a job. Status changes must follow the
// lifecycle (OPEN → IN_PROGRESS → COMPLETED).
func (s *Service) Update(ctx context.Context, callerID, jobID string, in UpdateInput) (*model.Job, error) {
	current, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(current.OwnerUserID, callerID); err != nil {
		return nil, err
	}

	completed := false
	if in.Status != nil && *in.Status != current.Status {
		from, _ := ParseStatus(current.Status)
		to, err := ParseStatus(*in.Status)
		if err != nil {
			return nil, &model.ValidationError{Msg: err.Error()}
		}
		if !IsTransitionAllowed(from, to) {
			return nil, &model.ValidationError{
				Msg: fmt.Sprintf("status change %s to %s is not allowed", from, to),
			}
		}
		completed = IsCompleted(to)
	}

	sets := []string{"updated_at = NOW()"}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, &model.ValidationError{Msg: "title cannot be empty"}
		}
		add("title", *in.Title)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Budget != nil {
		if *in.Budget <= 0 {
			return nil, &model.ValidationError{Msg: "budget must be positive"}
		}
		add("budget", *in.Budget)
	}
	if in.Category != nil {
		add("category", *in.Category)
	}
	if in.Skills != nil {
		add("skills", in.Skills)
	}
	if in.Status != nil {
		add("status", *in.Status)
	}

	args = append(args, jobID)
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING `+jobColumns,
			strings.Join(sets, ", "), len(args)),
		args...,
	)
	j, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}

	s.listings.Invalidate(ctx)
	s.publish(ctx, "EVENT_JOB_UPDATED", map[string]string{"jobId": j.ID})
	if completed {
		s.publish(ctx, "EVENT_JOB_COMPLETED", map[string]string{"jobId": j.ID})
	}
	return j, nil
}

// Delete removes a job. Comments and replies go with it via cascade.
func (s *Service) Delete(ctx context.Context, callerID, jobID string) error {
	current, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if err := auth.RequireOwner(current.OwnerUserID, callerID); err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	s.listings.Invalidate(ctx)
	s.publish(ctx, "EVENT_JOB_DELETED", map[string]string{"jobId": jobID})
	return nil
}

// publish sends a JSON event to Redis for SSE/gateway consumers (non-fatal).
func (s *Service) publish(ctx context.Context, channel string, payload map[string]string) {
	payload["type"] = channel
	event, _ := json.Marshal(payload)
	if err := s.rdb.Publish(ctx, channel, event).Err(); err != nil {
		slog.Warn("publish failed", "channel", channel, "err", err)
	}
}

func scanJob(row pgx.Row) (*model.Job, error) {
	var j model.Job
	if err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.Budget, &j.Category, &j.Skills,
		&j.Status, &j.OwnerUserID, &j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if j.Skills == nil {
		j.Skills = []string{}
	}
	return &j, nil
}

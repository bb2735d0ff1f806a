package discussion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"gigboard/marketplace-service/internal/auth"
	"gigboard/marketplace-service/internal/model"
)

// Service encapsulates comment and reply business logic.
type Service struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool, rdb *redis.Client) *Service {
	return &Service{pool: pool, rdb: rdb}
}

// ─── Comments ────────────────────────────────────────────────────────────────

// CreateComment attaches a new top-level comment to a job.
func (s *Service) CreateComment(ctx context.Context, authorID, jobID, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &model.ValidationError{Msg: "content is required"}
	}
	if err := s.jobExists(ctx, jobID); err != nil {
		return nil, err
	}

	var c model.Comment
	err := s.pool.QueryRow(ctx,
		`INSERT INTO comments (job_id, author_user_id, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, job_id, author_user_id, content, created_at, updated_at`,
		jobID, authorID, content,
	).Scan(&c.ID, &c.JobID, &c.AuthorUserID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	c.Replies = []model.Reply{}

	s.publish(ctx, "EVENT_COMMENT_POSTED", map[string]string{
		"commentId": c.ID,
		"jobId":     jobID,
	})
	return &c, nil
}

// ListForJob returns all comments of a job with replies nested, comments
// newest first and replies oldest first. One LEFT JOIN query, grouped in a
// single pass (Group).
func (s *Service) ListForJob(ctx context.Context, jobID string) ([]model.Comment, error) {
	if err := s.jobExists(ctx, jobID); err != nil {
		return nil, err
	}

	dbRows, err := s.pool.Query(ctx,
		`SELECT c.id, c.job_id, c.author_user_id, c.content, c.created_at, c.updated_at,
		        r.id, r.author_user_id, r.content, r.created_at, r.updated_at
		 FROM comments c
		 LEFT JOIN replies r ON r.comment_id = c.id
		 WHERE c.job_id = $1
		 ORDER BY c.created_at DESC, r.created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments query: %w", err)
	}
	defer dbRows.Close()

	var rows []Row
	for dbRows.Next() {
		var r Row
		if err := dbRows.Scan(
			&r.CommentID, &r.JobID, &r.CommentAuthorID, &r.CommentContent,
			&r.CommentCreatedAt, &r.CommentUpdatedAt,
			&r.ReplyID, &r.ReplyAuthorID, &r.ReplyContent,
			&r.ReplyCreatedAt, &r.ReplyUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list comments scan: %w", err)
		}
		rows = append(rows, r)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("list comments rows: %w", err)
	}

	return Group(rows), nil
}

// DeleteComment removes a comment and, via cascade, its replies. Author-only.
func (s *Service) DeleteComment(ctx context.Context, callerID, commentID string) error {
	var authorID, jobID string
	err := s.pool.QueryRow(ctx,
		`SELECT author_user_id, job_id FROM comments WHERE id = $1`, commentID,
	).Scan(&authorID, &jobID)
	if err != nil {
		return model.ErrNotFound
	}
	if err := auth.RequireOwner(authorID, callerID); err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.publish(ctx, "EVENT_COMMENT_DELETED", map[string]string{
		"commentId": commentID,
		"jobId":     jobID,
	})
	return nil
}

// ─── Replies ─────────────────────────────────────────────────────────────────

// CreateReply attaches a new reply to a comment.
func (s *Service) CreateReply(ctx context.Context, authorID, commentID, content string) (*model.Reply, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &model.ValidationError{Msg: "content is required"}
	}
	if err := s.commentExists(ctx, commentID); err != nil {
		return nil, err
	}

	var r model.Reply
	err := s.pool.QueryRow(ctx,
		`INSERT INTO replies (comment_id, author_user_id, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, comment_id, author_user_id, content, created_at, updated_at`,
		commentID, authorID, content,
	).Scan(&r.ID, &r.CommentID, &r.AuthorUserID, &r.Content, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}

	s.publish(ctx, "EVENT_REPLY_POSTED", map[string]string{
		"replyId":   r.ID,
		"commentId": commentID,
	})
	return &r, nil
}

// ListReplies returns a comment's replies, oldest first.
func (s *Service) ListReplies(ctx context.Context, commentID string) ([]model.Reply, error) {
	if err := s.commentExists(ctx, commentID); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, comment_id, author_user_id, content, created_at, updated_at
		 FROM replies
		 WHERE comment_id = $1
		 ORDER BY created_at ASC`,
		commentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list replies query: %w", err)
	}
	defer rows.Close()

	replies := make([]model.Reply, 0)
	for rows.Next() {
		var r model.Reply
		if err := rows.Scan(
			&r.ID, &r.CommentID, &r.AuthorUserID, &r.Content, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list replies scan: %w", err)
		}
		replies = append(replies, r)
	}
	return replies, rows.Err()
}

// DeleteReply removes a single reply. Author-only.
func (s *Service) DeleteReply(ctx context.Context, callerID, replyID string) error {
	var authorID, commentID string
	err := s.pool.QueryRow(ctx,
		`SELECT author_user_id, comment_id FROM replies WHERE id = $1`, replyID,
	).Scan(&authorID, &commentID)
	if err != nil {
		return model.ErrNotFound
	}
	if err := auth.RequireOwner(authorID, callerID); err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, `DELETE FROM replies WHERE id = $1`, replyID); err != nil {
		return fmt.Errorf("delete reply: %w", err)
	}

	s.publish(ctx, "EVENT_REPLY_DELETED", map[string]string{
		"replyId":   replyID,
		"commentId": commentID,
	})
	return nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (s *Service) jobExists(ctx context.Context, jobID string) error {
	var one int
	if err := s.pool.QueryRow(ctx, `SELECT 1 FROM jobs WHERE id = $1`, jobID).Scan(&one); err != nil {
		return model.ErrNotFound
	}
	return nil
}

func (s *Service) commentExists(ctx context.Context, commentID string) error {
	var one int
	if err := s.pool.QueryRow(ctx, `SELECT 1 FROM comments WHERE id = $1`, commentID).Scan(&one); err != nil {
		return model.ErrNotFound
	}
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

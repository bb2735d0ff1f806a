// Package discussion implements the job discussion feature: top-level
// comments and their threaded replies.
package discussion

import (
	"time"

	"gigboard/marketplace-service/internal/model"
)

// Row is one row of the comments LEFT JOIN replies result set. Reply fields
// are nil when the comment has no replies.
type Row struct {
	CommentID        string
	JobID            string
	CommentAuthorID  string
	CommentContent   string
	CommentCreatedAt time.Time
	CommentUpdatedAt time.Time

	ReplyID        *string
	ReplyAuthorID  *string
	ReplyContent   *string
	ReplyCreatedAt *time.Time
	ReplyUpdatedAt *time.Time
}

// Group flattens join rows into nested comments in a single pass.
//
// Rows must arrive sorted (comment.created_at DESC, reply.created_at ASC);
// the result keeps comments in first-seen order and replies in row order.
// A reply id already attached to its comment is skipped, so duplicate rows
// from the join cannot double-append.
func Group(rows []Row) []model.Comment {
	comments := make([]model.Comment, 0)
	index := make(map[string]int) // comment id → position in comments
	seen := make(map[string]bool) // reply ids already attached

	for _, r := range rows {
		pos, ok := index[r.CommentID]
		if !ok {
			pos = len(comments)
			index[r.CommentID] = pos
			comments = append(comments, model.Comment{
				ID:           r.CommentID,
				JobID:        r.JobID,
				AuthorUserID: r.CommentAuthorID,
				Content:      r.CommentContent,
				CreatedAt:    r.CommentCreatedAt,
				UpdatedAt:    r.CommentUpdatedAt,
				Replies:      []model.Reply{},
			})
		}

		if r.ReplyID == nil || seen[*r.ReplyID] {
			continue
		}
		seen[*r.ReplyID] = true
		comments[pos].Replies = append(comments[pos].Replies, model.Reply{
			ID:           *r.ReplyID,
			CommentID:    r.CommentID,
			AuthorUserID: *r.ReplyAuthorID,
			Content:      *r.ReplyContent,
			CreatedAt:    *r.ReplyCreatedAt,
			UpdatedAt:    *r.ReplyUpdatedAt,
		})
	}

	return comments
}

package discussion_test

import (
	"testing"
	"time"

	"gigboard/marketplace-service/internal/discussion"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func commentRow(commentID string, createdAt time.Time) discussion.Row {
	return discussion.Row{
		CommentID:        commentID,
		JobID:            "job-1",
		CommentAuthorID:  "user-1",
		CommentContent:   "comment " + commentID,
		CommentCreatedAt: createdAt,
		CommentUpdatedAt: createdAt,
	}
}

func withReply(r discussion.Row, replyID string, createdAt time.Time) discussion.Row {
	author := "user-2"
	content := "reply " + replyID
	r.ReplyID = &replyID
	r.ReplyAuthorID = &author
	r.ReplyContent = &content
	r.ReplyCreatedAt = &createdAt
	r.ReplyUpdatedAt = &createdAt
	return r
}

func TestGroup_Empty(t *testing.T) {
	got := discussion.Group(nil)
	if got == nil {
		t.Fatal("Group(nil) must return an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("Group(nil) returned %d comments, want 0", len(got))
	}
}

func TestGroup_CommentWithoutReplies(t *testing.T) {
	got := discussion.Group([]discussion.Row{commentRow("c1", base)})
	if len(got) != 1 {
		t.Fatalf("got %d comments, want 1", len(got))
	}
	if got[0].ID != "c1" {
		t.Errorf("comment id = %q, want c1", got[0].ID)
	}
	if got[0].Replies == nil {
		t.Error("replies must be an empty slice, not nil")
	}
	if len(got[0].Replies) != 0 {
		t.Errorf("got %d replies, want 0", len(got[0].Replies))
	}
}

// Comments must keep first-seen (newest-first) order; replies attach in row
// (oldest-first) order. Mirrors the endpoint scenario: comment A then B gives
// [B, A], replies R1 then R2 on A give A.Replies = [R1, R2].
func TestGroup_OrderingScenario(t *testing.T) {
	a := commentRow("A", base)                // older comment
	b := commentRow("B", base.Add(time.Hour)) // newer comment

	rows := []discussion.Row{
		// sorted comment.created_at DESC, reply.created_at ASC
		b,
		withReply(a, "R1", base.Add(10*time.Minute)),
		withReply(a, "R2", base.Add(20*time.Minute)),
	}

	got := discussion.Group(rows)
	if len(got) != 2 {
		t.Fatalf("got %d comments, want 2", len(got))
	}
	if got[0].ID != "B" || got[1].ID != "A" {
		t.Errorf("comment order = [%s, %s], want [B, A]", got[0].ID, got[1].ID)
	}
	if len(got[0].Replies) != 0 {
		t.Errorf("comment B should have no replies, got %d", len(got[0].Replies))
	}
	replies := got[1].Replies
	if len(replies) != 2 {
		t.Fatalf("comment A has %d replies, want 2", len(replies))
	}
	if replies[0].ID != "R1" || replies[1].ID != "R2" {
		t.Errorf("reply order = [%s, %s], want [R1, R2]", replies[0].ID, replies[1].ID)
	}
	if replies[0].CommentID != "A" || replies[1].CommentID != "A" {
		t.Error("replies must carry their parent comment id")
	}
}

// Duplicate rows from the join must not double-attach a reply.
func TestGroup_DeduplicatesReplies(t *testing.T) {
	a := commentRow("A", base)
	dup := withReply(a, "R1", base.Add(time.Minute))

	got := discussion.Group([]discussion.Row{dup, dup, dup})
	if len(got) != 1 {
		t.Fatalf("got %d comments, want 1", len(got))
	}
	if len(got[0].Replies) != 1 {
		t.Errorf("got %d replies, want 1 (duplicates must be dropped)", len(got[0].Replies))
	}
}

func TestGroup_RepliesAttachToTheirOwnComment(t *testing.T) {
	a := commentRow("A", base)
	b := commentRow("B", base.Add(time.Hour))

	rows := []discussion.Row{
		withReply(b, "RB", base.Add(90*time.Minute)),
		withReply(a, "RA", base.Add(5*time.Minute)),
	}

	got := discussion.Group(rows)
	if len(got) != 2 {
		t.Fatalf("got %d comments, want 2", len(got))
	}
	if len(got[0].Replies) != 1 || got[0].Replies[0].ID != "RB" {
		t.Errorf("comment B replies = %+v, want [RB]", got[0].Replies)
	}
	if len(got[1].Replies) != 1 || got[1].Replies[0].ID != "RA" {
		t.Errorf("comment A replies = %+v, want [RA]", got[1].Replies)
	}
}

// Interleaved rows for the same comment (all its rows are contiguous in real
// query output, but Group must not rely on that).
func TestGroup_NonContiguousCommentRows(t *testing.T) {
	a := commentRow("A", base)
	b := commentRow("B", base.Add(time.Hour))

	rows := []discussion.Row{
		withReply(b, "R1", base.Add(61*time.Minute)),
		withReply(a, "R2", base.Add(time.Minute)),
		withReply(b, "R3", base.Add(62*time.Minute)),
	}

	got := discussion.Group(rows)
	if len(got) != 2 {
		t.Fatalf("got %d comments, want 2", len(got))
	}
	if got[0].ID != "B" || got[1].ID != "A" {
		t.Errorf("comment order = [%s, %s], want [B, A] (first-seen)", got[0].ID, got[1].ID)
	}
	if len(got[0].Replies) != 2 {
		t.Errorf("comment B has %d replies, want 2", len(got[0].Replies))
	}
}

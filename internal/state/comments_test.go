package state

import (
	"encoding/json"
	"testing"

	"github.com/atinyakov/NoteShare/internal/models"
)

func TestCommentsByNoteID(t *testing.T) {
	s := DefaultComments()

	if got := s.ByNoteID(1); len(got) != 2 {
		t.Errorf("ByNoteID(1) len = %d; want 2", len(got))
	}
	if got := s.ByNoteID(4); got == nil || len(got) != 0 {
		t.Errorf("ByNoteID(4) = %v; want empty non-nil slice", got)
	}
	if got := s.ByNoteID(77); got == nil || len(got) != 0 {
		t.Errorf("ByNoteID(77) = %v; want empty non-nil slice", got)
	}
}

func TestCommentsAdd_AppendsLast(t *testing.T) {
	base := DefaultComments()
	c := models.Comment{ID: 100, Author: "X", Date: "2025-01-02", Text: "hello"}

	next := base.Add(1, c)

	got := next.ByNoteID(1)
	if len(got) != 3 {
		t.Fatalf("len = %d; want 3", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 || got[2] != c {
		t.Errorf("unexpected thread order: %+v", got)
	}
	if len(base.ByNoteID(1)) != 2 {
		t.Error("Add mutated the previous state")
	}
}

func TestCommentsAdd_CreatesThread(t *testing.T) {
	next := CommentsState{}.Add(9, models.Comment{ID: 1, Text: "first"})
	if got := next.ByNoteID(9); len(got) != 1 || got[0].Text != "first" {
		t.Errorf("ByNoteID(9) = %+v", got)
	}
}

func TestMaxCommentID(t *testing.T) {
	if got := DefaultComments().MaxCommentID(); got != 4 {
		t.Errorf("MaxCommentID = %d; want 4", got)
	}
	if got := (CommentsState{}).MaxCommentID(); got != 0 {
		t.Errorf("MaxCommentID on empty = %d; want 0", got)
	}
}

func TestCommentsJSON_IntKeys(t *testing.T) {
	data, err := json.Marshal(DefaultComments())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back CommentsState
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(back.ByNoteID(3)) != 1 || back.ByNoteID(3)[0].Author != "Juan Gómez" {
		t.Errorf("round trip lost thread 3: %+v", back.Threads)
	}
}

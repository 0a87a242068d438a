package state

import (
	"slices"

	"github.com/atinyakov/NoteShare/internal/models"
)

// CommentsState maps note ids to their comment threads in display order.
type CommentsState struct {
	Threads map[int][]models.Comment `json:"commentsDB"`
}

// ByNoteID returns the thread of a note, or an empty slice if it has none.
func (s CommentsState) ByNoteID(noteID int) []models.Comment {
	thread, ok := s.Threads[noteID]
	if !ok {
		return []models.Comment{}
	}
	return slices.Clone(thread)
}

// Add appends c to the end of the note's thread, creating it if absent.
func (s CommentsState) Add(noteID int, c models.Comment) CommentsState {
	threads := make(map[int][]models.Comment, len(s.Threads)+1)
	for k, v := range s.Threads {
		threads[k] = v
	}
	threads[noteID] = append(slices.Clone(s.Threads[noteID]), c)
	return CommentsState{Threads: threads}
}

// MaxCommentID returns the highest comment id across all threads, or 0.
func (s CommentsState) MaxCommentID() int {
	maxID := 0
	for _, thread := range s.Threads {
		for _, c := range thread {
			if c.ID > maxID {
				maxID = c.ID
			}
		}
	}
	return maxID
}

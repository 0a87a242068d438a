package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atinyakov/NoteShare/internal/models"
)

// NotesState is the note catalog and the favorite set.
type NotesState struct {
	Catalog     Catalog `json:"notesDB"`
	FavoriteIDs []int   `json:"favoriteNoteIds"`
}

// AllNotes flattens the catalog in category order, then in-category order.
func (s NotesState) AllNotes() []models.Note {
	var all []models.Note
	for _, name := range s.Catalog.order {
		all = append(all, s.Catalog.buckets[name]...)
	}
	return all
}

// MaxNoteID returns the highest note id in the catalog, or 0 when it is empty.
func (s NotesState) MaxNoteID() int {
	maxID := 0
	for _, n := range s.AllNotes() {
		if n.ID > maxID {
			maxID = n.ID
		}
	}
	return maxID
}

// Categories lists one entry per category with its live note count.
func (s NotesState) Categories() []models.Category {
	categories := make([]models.Category, 0, s.Catalog.Len())
	for i, name := range s.Catalog.order {
		categories = append(categories, models.Category{
			ID:    i + 1,
			Name:  name,
			Count: len(s.Catalog.buckets[name]),
		})
	}
	return categories
}

// NotesByCategory returns the notes of a category; unknown categories yield an empty slice.
func (s NotesState) NotesByCategory(name string) []models.Note {
	notes := s.Catalog.Notes(name)
	if notes == nil {
		return []models.Note{}
	}
	return slices.Clone(notes)
}

// NoteByID scans the catalog for a note.
func (s NotesState) NoteByID(id int) (models.Note, bool) {
	for _, n := range s.AllNotes() {
		if n.ID == id {
			return n, true
		}
	}
	return models.Note{}, false
}

// IsFavorite reports whether id is in the favorite set.
func (s NotesState) IsFavorite(id int) bool {
	return slices.Contains(s.FavoriteIDs, id)
}

// Favorites returns the catalog notes whose ids are in the favorite set.
// Favorite ids without a note are skipped.
func (s NotesState) Favorites() []models.Note {
	favorites := []models.Note{}
	for _, n := range s.AllNotes() {
		if s.IsFavorite(n.ID) {
			favorites = append(favorites, n)
		}
	}
	return favorites
}

// ToggleFavorite removes id from the favorite set if present, otherwise adds it.
func (s NotesState) ToggleFavorite(id int) NotesState {
	next := s
	if s.IsFavorite(id) {
		next.FavoriteIDs = slices.DeleteFunc(slices.Clone(s.FavoriteIDs), func(v int) bool { return v == id })
	} else {
		next.FavoriteIDs = append(slices.Clone(s.FavoriteIDs), id)
	}
	return next
}

// AddNote files a new note under the trimmed category name with the next free id.
// Inputs are not validated here.
func (s NotesState) AddNote(category, title, author, preview string) (NotesState, models.Note, models.Result) {
	note := models.Note{
		ID:        s.MaxNoteID() + 1,
		Title:     title,
		Author:    author,
		Rating:    0,
		Downloads: 0,
		Preview:   preview,
	}
	name := strings.TrimSpace(category)

	next := s
	next.Catalog = s.Catalog.Append(name, note)
	return next, note, models.Result{
		Success: true,
		Message: fmt.Sprintf("Material subido a la categoría \"%s\" correctamente.", name),
	}
}

// SearchByTitle returns notes whose title contains query, ignoring case.
// An empty query matches nothing.
func (s NotesState) SearchByTitle(query string) []models.Note {
	found := []models.Note{}
	if query == "" {
		return found
	}
	q := strings.ToLower(query)
	for _, n := range s.AllNotes() {
		if strings.Contains(strings.ToLower(n.Title), q) {
			found = append(found, n)
		}
	}
	return found
}

package http

import (
	"context"
	"net/http"
	"unicode/utf8"

	"github.com/atinyakov/NoteShare/internal/middleware"
	"github.com/atinyakov/NoteShare/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	msgUploadFields  = "Por favor, completa todos los campos requeridos."
	msgCommentFields = "El comentario no puede estar vacío."
)

// minSearchRunes is the shortest query that triggers a search.
const minSearchRunes = 2

// NotesService defines the notes store operations required by the HTTP handlers.
type NotesService interface {
	ListCategories() []models.Category
	ListNotesByCategory(name string) []models.Note
	GetNoteByID(id int) (models.Note, bool)
	ListFavorites() []models.Note
	IsFavorite(id int) bool
	SearchByTitle(query string) []models.Note
	ToggleFavorite(ctx context.Context, id int)
	AddNote(ctx context.Context, category, title, author, preview string) (models.Note, models.Result)
}

// CommentsService defines the comments store operations required by the HTTP handlers.
type CommentsService interface {
	ListByNoteID(noteID int) []models.Comment
	AddComment(ctx context.Context, noteID int, author, text string) models.Comment
}

// NotesHandler serves the catalog, favorites, search and comment endpoints.
type NotesHandler struct {
	Notes    NotesService
	Comments CommentsService
	validate *validator.Validate
}

// NewNotesHandler creates a NotesHandler.
func NewNotesHandler(notes NotesService, comments CommentsService) *NotesHandler {
	return &NotesHandler{Notes: notes, Comments: comments, validate: newValidator()}
}

// UploadRequest is the JSON payload of the upload form.
type UploadRequest struct {
	Category string `json:"category" validate:"notblank"`
	Title    string `json:"title" validate:"notblank"`
	Preview  string `json:"preview" validate:"notblank"`
}

// UploadResponse carries the store result and the created note.
type UploadResponse struct {
	models.Result
	Note models.Note `json:"note"`
}

// CommentRequest is the JSON payload of a new comment.
type CommentRequest struct {
	Text string `json:"text" validate:"notblank"`
}

// NoteDetail is a note together with its favorite flag and comment thread.
type NoteDetail struct {
	models.Note
	Favorite bool             `json:"favorite"`
	Comments []models.Comment `json:"comments"`
}

// FavoriteResponse reports the favorite flag after a toggle.
type FavoriteResponse struct {
	ID       int  `json:"id"`
	Favorite bool `json:"favorite"`
}

// Categories lists the categories in catalog order.
func (h *NotesHandler) Categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Notes.ListCategories())
}

// NotesByCategory lists the notes of one category. Unknown categories yield an empty list.
func (h *NotesHandler) NotesByCategory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Notes.ListNotesByCategory(pathParam(r, "name")))
}

// Note returns one note with its favorite flag and comments.
func (h *NotesHandler) Note(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeResult(w, http.StatusBadRequest, false, msgInvalidID)
		return
	}
	note, ok := h.Notes.GetNoteByID(id)
	if !ok {
		writeResult(w, http.StatusNotFound, false, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, NoteDetail{
		Note:     note,
		Favorite: h.Notes.IsFavorite(id),
		Comments: h.Comments.ListByNoteID(id),
	})
}

// Upload adds a note authored by the logged-in user.
func (h *NotesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if err := decodeAndValidate(r, h.validate, &req); err != nil {
		if isValidationError(err) {
			writeResult(w, http.StatusBadRequest, false, msgUploadFields)
			return
		}
		writeResult(w, http.StatusBadRequest, false, msgInvalidBody)
		return
	}

	note, res := h.Notes.AddNote(r.Context(), req.Category, req.Title, authorFrom(r.Context()), req.Preview)
	writeJSON(w, http.StatusCreated, UploadResponse{Result: res, Note: note})
}

// Search returns notes whose title contains q. Queries shorter than two
// characters return an empty list without searching.
func (h *NotesHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if utf8.RuneCountInString(q) < minSearchRunes {
		writeJSON(w, http.StatusOK, []models.Note{})
		return
	}
	writeJSON(w, http.StatusOK, h.Notes.SearchByTitle(q))
}

// Favorites lists the favorite notes in catalog order.
func (h *NotesHandler) Favorites(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Notes.ListFavorites())
}

// ToggleFavorite flips the favorite flag of a note id.
func (h *NotesHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeResult(w, http.StatusBadRequest, false, msgInvalidID)
		return
	}
	h.Notes.ToggleFavorite(r.Context(), id)
	writeJSON(w, http.StatusOK, FavoriteResponse{ID: id, Favorite: h.Notes.IsFavorite(id)})
}

// ListComments lists the comment thread of a note.
func (h *NotesHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeResult(w, http.StatusBadRequest, false, msgInvalidID)
		return
	}
	writeJSON(w, http.StatusOK, h.Comments.ListByNoteID(id))
}

// AddComment appends a comment by the logged-in user to an existing note.
func (h *NotesHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeResult(w, http.StatusBadRequest, false, msgInvalidID)
		return
	}
	if _, ok := h.Notes.GetNoteByID(id); !ok {
		writeResult(w, http.StatusNotFound, false, msgNotFound)
		return
	}

	var req CommentRequest
	if err := decodeAndValidate(r, h.validate, &req); err != nil {
		if isValidationError(err) {
			writeResult(w, http.StatusBadRequest, false, msgCommentFields)
			return
		}
		writeResult(w, http.StatusBadRequest, false, msgInvalidBody)
		return
	}

	c := h.Comments.AddComment(r.Context(), id, authorFrom(r.Context()), req.Text)
	writeJSON(w, http.StatusCreated, c)
}

func authorFrom(ctx context.Context) string {
	if u, ok := middleware.UserFromContext(ctx); ok && u.Name != "" {
		return u.Name
	}
	return models.AnonymousAuthor
}

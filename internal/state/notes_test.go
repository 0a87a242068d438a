package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_DefaultCatalog(t *testing.T) {
	cats := DefaultNotes().Categories()
	require.Len(t, cats, 3)

	assert.Equal(t, "Algoritmos", cats[0].Name)
	assert.Equal(t, 1, cats[0].ID)
	assert.Equal(t, 2, cats[0].Count)
	assert.Equal(t, "Bases de datos", cats[1].Name)
	assert.Equal(t, "Redes", cats[2].Name)
	assert.Equal(t, 3, cats[2].Count)
}

func TestNotesByCategory_Unknown(t *testing.T) {
	notes := DefaultNotes().NotesByCategory("Física")
	require.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestNoteByID(t *testing.T) {
	s := DefaultNotes()

	n, ok := s.NoteByID(6)
	require.True(t, ok)
	assert.Equal(t, "Configuraciones Cisco", n.Title)

	_, ok = s.NoteByID(99)
	assert.False(t, ok)
}

func TestAddNote_IDsStrictlyIncreasing(t *testing.T) {
	s := DefaultNotes()
	last := s.MaxNoteID()
	seen := map[int]bool{}
	for _, n := range s.AllNotes() {
		seen[n.ID] = true
	}

	for i, cat := range []string{"Redes", "Física", "  Física  ", "Algoritmos"} {
		next, note, res := s.AddNote(cat, "t", "a", "p")
		require.True(t, res.Success, "AddNote #%d failed", i)
		assert.Greater(t, note.ID, last)
		assert.False(t, seen[note.ID], "duplicate id %d", note.ID)
		assert.Zero(t, note.Rating)
		assert.Zero(t, note.Downloads)
		seen[note.ID] = true
		last = note.ID
		s = next
	}
}

func TestAddNote_NewCategoryTrimmedAndAppended(t *testing.T) {
	s, note, res := DefaultNotes().AddNote("  Física ", "Cinemática", "Ana", "MRU y MRUA")

	require.True(t, res.Success)
	assert.Equal(t, `Material subido a la categoría "Física" correctamente.`, res.Message)
	assert.Equal(t, 8, note.ID)

	cats := s.Categories()
	require.Len(t, cats, 4)
	assert.Equal(t, "Física", cats[3].Name)
	assert.Equal(t, 1, cats[3].Count)
	assert.Equal(t, 4, cats[3].ID)
}

func TestAddNote_LeavesPreviousStateUntouched(t *testing.T) {
	base := DefaultNotes()
	_, _, _ = base.AddNote("Redes", "x", "y", "z")

	assert.Len(t, base.NotesByCategory("Redes"), 3)
	assert.Equal(t, 7, base.MaxNoteID())
}

func TestAddNote_EmptyCatalog(t *testing.T) {
	_, note, _ := NotesState{Catalog: NewCatalog()}.AddNote("A", "t", "a", "p")
	assert.Equal(t, 1, note.ID)

	_, note, _ = NotesState{}.AddNote("A", "t", "a", "p")
	assert.Equal(t, 1, note.ID)
}

func TestToggleFavorite_TwiceRestores(t *testing.T) {
	s := DefaultNotes()
	for _, id := range []int{1, 3, 42} {
		before := s.IsFavorite(id)
		once := s.ToggleFavorite(id)
		assert.NotEqual(t, before, once.IsFavorite(id))
		twice := once.ToggleFavorite(id)
		assert.Equal(t, before, twice.IsFavorite(id))
		s = once
	}
}

func TestFavorites_SkipsStaleIDs(t *testing.T) {
	s := DefaultNotes().ToggleFavorite(5).ToggleFavorite(999).ToggleFavorite(2)

	favs := s.Favorites()
	require.Len(t, favs, 2)
	// catalog order, not toggle order
	assert.Equal(t, 2, favs[0].ID)
	assert.Equal(t, 5, favs[1].ID)
}

func TestSearchByTitle(t *testing.T) {
	s := DefaultNotes()

	tests := []struct {
		query string
		want  []int
	}{
		{"", nil},
		{"sql", []int{3}},
		{"SQL", []int{3}},
		{"apuntes", []int{1, 3}},
		{"configuraciones", []int{6, 7}},
		{"inexistente", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := s.SearchByTitle(tt.query)
			require.NotNil(t, got)
			ids := []int{}
			for _, n := range got {
				ids = append(ids, n.ID)
			}
			if tt.want == nil {
				assert.Empty(t, ids)
				return
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSearchByTitle_FindsSQLNote(t *testing.T) {
	got := DefaultNotes().SearchByTitle("sql")
	require.Len(t, got, 1)
	assert.Equal(t, "Apuntes de SQL", got[0].Title)
}

func TestCatalogJSON_PreservesOrder(t *testing.T) {
	s, _, _ := DefaultNotes().AddNote("Álgebra", "Matrices", "Ana", "...")
	s = s.ToggleFavorite(3)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back NotesState
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, []string{"Algoritmos", "Bases de datos", "Redes", "Álgebra"}, back.Catalog.Names())
	assert.Equal(t, s.AllNotes(), back.AllNotes())
	assert.Equal(t, []int{3}, back.FavoriteIDs)
}

func TestCatalogJSON_DocumentOrder(t *testing.T) {
	var c Catalog
	err := json.Unmarshal([]byte(`{"Zeta":[{"id":2,"title":"b"}],"Alfa":[{"id":1,"title":"a"}]}`), &c)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alfa"}, c.Names())
	assert.Len(t, c.Notes("Alfa"), 1)
}

func TestCatalogJSON_Invalid(t *testing.T) {
	var c Catalog
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"A":"nope"}`), &c))
}

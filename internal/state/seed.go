package state

import "github.com/atinyakov/NoteShare/internal/models"

// DefaultNotes returns the catalog a fresh installation starts with.
func DefaultNotes() NotesState {
	c := NewCatalog()
	seed := []struct {
		category string
		note     models.Note
	}{
		{"Algoritmos", models.Note{ID: 1, Title: "Apuntes de Algoritmos", Author: "Carlos Ruiz", Rating: 5, Downloads: 120, Preview: "Introducción a estructuras de control y funciones..."}},
		{"Algoritmos", models.Note{ID: 2, Title: "Ejercicios básicos", Author: "Ana López", Rating: 4, Downloads: 85, Preview: "Listas, bucles y diagramas de flujo..."}},
		{"Bases de datos", models.Note{ID: 3, Title: "Apuntes de SQL", Author: "Pedro Torres", Rating: 5, Downloads: 200, Preview: "Normalización, consultas básicas y avanzadas..."}},
		{"Bases de datos", models.Note{ID: 4, Title: "Diseño de BD", Author: "María González", Rating: 4, Downloads: 150, Preview: "Modelado relacional y ER diagrams..."}},
		{"Redes", models.Note{ID: 5, Title: "Fundamentos de redes", Author: "Luis Gómez", Rating: 5, Downloads: 90, Preview: "Topologías, protocolos y direccionamiento IP..."}},
		{"Redes", models.Note{ID: 6, Title: "Configuraciones Cisco", Author: "Laura Pérez", Rating: 4, Downloads: 60, Preview: "Configuración básica de routers y switches..."}},
		{"Redes", models.Note{ID: 7, Title: "Configuraciones GNS3", Author: "Laura Pérez", Rating: 3, Downloads: 30, Preview: "Configuración básica de gns3 y..."}},
	}
	for _, s := range seed {
		c = c.Append(s.category, s.note)
	}
	return NotesState{Catalog: c, FavoriteIDs: []int{}}
}

// DefaultComments returns the comment threads a fresh installation starts with.
func DefaultComments() CommentsState {
	return CommentsState{Threads: map[int][]models.Comment{
		1: {
			{ID: 1, Author: "Lucía Pérez", Date: "2024-10-10", Text: "Muy buenos apuntes, me sirvieron mucho!"},
			{ID: 2, Author: "David Rojas", Date: "2024-10-12", Text: "Podrías agregar ejemplos de recursividad?"},
		},
		2: {
			{ID: 3, Author: "Laura Torres", Date: "2024-10-15", Text: "Excelente guía para estudiar antes del parcial!"},
		},
		3: {
			{ID: 4, Author: "Juan Gómez", Date: "2024-10-17", Text: "El apartado de consultas JOIN está muy claro 👏"},
		},
		4: {},
	}}
}

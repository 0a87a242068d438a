// Package shell implements the interactive NoteShare command line that drives
// the auth, notes and comments stores directly.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/atinyakov/NoteShare/internal/app"
	"github.com/atinyakov/NoteShare/internal/models"
	"go.uber.org/zap"
)

const (
	msgLoginRequired    = "Debes iniciar sesión."
	msgFillAllFields    = "Por favor completa todos los campos"
	msgPasswordMismatch = "Las contraseñas no coinciden"
	msgUploadFields     = "Por favor, completa todos los campos requeridos."
	msgEmptyComment     = "El comentario no puede estar vacío."
	msgNotFound         = "Material no encontrado"
	msgShortQuery       = "Escribe al menos 2 caracteres para buscar."
	msgNoResults        = "No se encontraron resultados."
	msgNoFavorites      = "No tienes favoritos todavía."
	msgNoComments       = "Aún no hay comentarios."
	msgLoggedOut        = "Sesión cerrada."
	msgUnknownCommand   = "Comando desconocido. Escribe \"help\" para ver los comandos."
)

const helpText = `Comandos disponibles:
  register              crear una cuenta
  login                 iniciar sesión
  logout                cerrar sesión
  whoami                mostrar el usuario actual
  categories            listar categorías
  notes <categoría>     listar materiales de una categoría
  show <id>             ver un material y sus comentarios
  upload                subir material
  search <texto>        buscar materiales por título
  fav <id>              añadir o quitar de favoritos
  favorites             listar favoritos
  comment <id>          comentar un material
  help                  mostrar esta ayuda
  exit                  salir`

// minSearchRunes is the shortest query that triggers a search.
const minSearchRunes = 2

// Shell reads commands from an input stream and prints results to an output stream.
type Shell struct {
	stores *app.Stores
	in     *bufio.Scanner
	out    io.Writer
	log    *zap.Logger
}

// New creates a shell over stores.
func New(stores *app.Stores, in io.Reader, out io.Writer, log *zap.Logger) *Shell {
	return &Shell{
		stores: stores,
		in:     bufio.NewScanner(in),
		out:    out,
		log:    log,
	}
}

// Run executes commands until "exit", end of input or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := s.prompt("noteshare> ")
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		if quit := s.Exec(ctx, line); quit {
			return nil
		}
	}
}

// Exec runs a single command line. It reports whether the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}
	cmd, rest := args[0], strings.Join(args[1:], " ")

	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		fmt.Fprintln(s.out, helpText)
		return false
	case "register":
		s.register(ctx)
		return false
	case "login":
		s.login(ctx)
		return false
	}

	if !s.stores.Auth.IsLoggedIn() {
		fmt.Fprintln(s.out, msgLoginRequired)
		return false
	}

	switch cmd {
	case "logout":
		s.stores.Auth.Logout(ctx)
		fmt.Fprintln(s.out, msgLoggedOut)
	case "whoami":
		u, _ := s.stores.Auth.CurrentUser()
		fmt.Fprintf(s.out, "%s <%s>\n", u.Name, u.Email)
	case "categories":
		for _, c := range s.stores.Notes.ListCategories() {
			fmt.Fprintf(s.out, "%d. %s (%d)\n", c.ID, c.Name, c.Count)
		}
	case "notes":
		if rest == "" {
			fmt.Fprintln(s.out, "Uso: notes <categoría>")
			return false
		}
		s.printNotes(s.stores.Notes.ListNotesByCategory(rest), msgNoResults)
	case "show":
		if id, ok := s.noteID(args, "show"); ok {
			s.show(id)
		}
	case "upload":
		s.upload(ctx)
	case "search":
		if utf8.RuneCountInString(rest) < minSearchRunes {
			fmt.Fprintln(s.out, msgShortQuery)
			return false
		}
		s.printNotes(s.stores.Notes.SearchByTitle(rest), msgNoResults)
	case "fav":
		if id, ok := s.noteID(args, "fav"); ok {
			s.stores.Notes.ToggleFavorite(ctx, id)
			if s.stores.Notes.IsFavorite(id) {
				fmt.Fprintln(s.out, "Añadido a Favoritos")
			} else {
				fmt.Fprintln(s.out, "Quitado de Favoritos")
			}
		}
	case "favorites":
		s.printNotes(s.stores.Notes.ListFavorites(), msgNoFavorites)
	case "comment":
		if id, ok := s.noteID(args, "comment"); ok {
			s.comment(ctx, id)
		}
	default:
		fmt.Fprintln(s.out, msgUnknownCommand)
	}
	return false
}

func (s *Shell) register(ctx context.Context) {
	a, ok := s.promptAll("Nombre: ", "Email: ", "Contraseña: ", "Confirmar contraseña: ")
	if !ok {
		return
	}
	if anyBlank(a...) {
		fmt.Fprintln(s.out, msgFillAllFields)
		return
	}
	if a[2] != a[3] {
		fmt.Fprintln(s.out, msgPasswordMismatch)
		return
	}
	res := s.stores.Auth.Register(ctx, a[0], a[1], a[2])
	fmt.Fprintln(s.out, res.Message)
}

func (s *Shell) login(ctx context.Context) {
	a, ok := s.promptAll("Email: ", "Contraseña: ")
	if !ok {
		return
	}
	if anyBlank(a...) {
		fmt.Fprintln(s.out, msgFillAllFields)
		return
	}
	res := s.stores.Auth.Login(ctx, a[0], a[1])
	fmt.Fprintln(s.out, res.Message)
	s.log.Debug("login attempt", zap.Bool("success", res.Success))
}

func (s *Shell) upload(ctx context.Context) {
	a, ok := s.promptAll("Categoría: ", "Título: ", "Resumen: ")
	if !ok {
		return
	}
	if anyBlank(a...) {
		fmt.Fprintln(s.out, msgUploadFields)
		return
	}
	_, res := s.stores.Notes.AddNote(ctx, a[0], a[1], s.author(), a[2])
	fmt.Fprintln(s.out, res.Message)
}

func (s *Shell) comment(ctx context.Context, id int) {
	if _, ok := s.stores.Notes.GetNoteByID(id); !ok {
		fmt.Fprintln(s.out, msgNotFound)
		return
	}
	text, ok := s.prompt("Comentario: ")
	if !ok {
		return
	}
	if anyBlank(text) {
		fmt.Fprintln(s.out, msgEmptyComment)
		return
	}
	c := s.stores.Comments.AddComment(ctx, id, s.author(), text)
	fmt.Fprintf(s.out, "Comentario #%d publicado.\n", c.ID)
}

func (s *Shell) show(id int) {
	n, ok := s.stores.Notes.GetNoteByID(id)
	if !ok {
		fmt.Fprintln(s.out, msgNotFound)
		return
	}
	star := "☆"
	if s.stores.Notes.IsFavorite(id) {
		star = "⭐"
	}
	fmt.Fprintf(s.out, "%s #%d %s\n", star, n.ID, n.Title)
	fmt.Fprintf(s.out, "Por: %s | %d descargas | %s\n", n.Author, n.Downloads, strings.Repeat("★", n.Rating))
	fmt.Fprintln(s.out, n.Preview)

	comments := s.stores.Comments.ListByNoteID(id)
	fmt.Fprintf(s.out, "Comentarios (%d):\n", len(comments))
	if len(comments) == 0 {
		fmt.Fprintln(s.out, "  "+msgNoComments)
	}
	for _, c := range comments {
		fmt.Fprintf(s.out, "  [%s] %s: %s\n", c.Date, c.Author, c.Text)
	}
}

func (s *Shell) printNotes(notes []models.Note, empty string) {
	if len(notes) == 0 {
		fmt.Fprintln(s.out, empty)
		return
	}
	for _, n := range notes {
		fmt.Fprintf(s.out, "#%d %s (Por: %s | %d descargas)\n", n.ID, n.Title, n.Author, n.Downloads)
	}
}

func (s *Shell) noteID(args []string, cmd string) (int, bool) {
	if len(args) < 2 {
		fmt.Fprintf(s.out, "Uso: %s <id>\n", cmd)
		return 0, false
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(s.out, "Identificador inválido: %q\n", args[1])
		return 0, false
	}
	return id, true
}

func (s *Shell) author() string {
	if u, ok := s.stores.Auth.CurrentUser(); ok && u.Name != "" {
		return u.Name
	}
	return models.AnonymousAuthor
}

package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/atinyakov/NoteShare/internal/models"
)

// Catalog maps category names to their notes and remembers the order
// in which categories were first introduced.
type Catalog struct {
	order   []string
	buckets map[string][]models.Note
}

// NewCatalog returns an empty catalog.
func NewCatalog() Catalog {
	return Catalog{buckets: make(map[string][]models.Note)}
}

// Names returns category names in insertion order.
func (c Catalog) Names() []string {
	return slices.Clone(c.order)
}

// Notes returns the notes filed under name, or nil if the category does not exist.
func (c Catalog) Notes(name string) []models.Note {
	return c.buckets[name]
}

// Len returns the number of categories.
func (c Catalog) Len() int {
	return len(c.order)
}

// Append returns a copy of the catalog with note appended to the name bucket,
// creating the bucket at the end of the order if needed.
func (c Catalog) Append(name string, note models.Note) Catalog {
	next := Catalog{
		order:   slices.Clone(c.order),
		buckets: make(map[string][]models.Note, len(c.buckets)+1),
	}
	for k, v := range c.buckets {
		next.buckets[k] = v
	}
	if _, ok := next.buckets[name]; !ok {
		next.order = append(next.order, name)
	}
	next.buckets[name] = append(slices.Clone(c.buckets[name]), note)
	return next
}

// MarshalJSON encodes the catalog as a JSON object whose keys follow category order.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		notes := c.buckets[name]
		if notes == nil {
			notes = []models.Note{}
		}
		val, err := json.Marshal(notes)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the document order of its keys.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	if tok == nil {
		*c = NewCatalog()
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("catalog must be a JSON object, got %v", tok)
	}

	next := NewCatalog()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read category name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected category key %v", tok)
		}
		var notes []models.Note
		if err := dec.Decode(&notes); err != nil {
			return fmt.Errorf("decode category %q: %w", name, err)
		}
		if _, seen := next.buckets[name]; !seen {
			next.order = append(next.order, name)
		}
		next.buckets[name] = notes
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read catalog end: %w", err)
	}

	*c = next
	return nil
}

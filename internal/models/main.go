// Package models defines the core data structures for users, notes and comments.
package models

// User represents a registered account.
type User struct {
	// ID is the unique identifier assigned at registration.
	ID string `json:"id"`
	// Name is the display name of the user.
	Name string `json:"name"`
	// Email is the natural key of the user, unique among registered users.
	Email string `json:"email"`
	// Password is stored and compared as plain text.
	Password string `json:"password"`
}

// Public returns the user without the password.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// PublicUser is the read-only view of a User exposed through the session.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Note is a note summary filed under exactly one category.
type Note struct {
	// ID is unique across the whole catalog.
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Downloads int    `json:"downloads"`
	Preview   string `json:"preview"`
}

// Category is a grouping of notes. It is derived from the catalog and never stored.
type Category struct {
	// ID is the 1-based position of the category in catalog order.
	ID   int    `json:"id"`
	Name string `json:"name"`
	// Count is the number of notes in the category at the time of listing.
	Count int `json:"count"`
}

// Comment is a single entry of a note's comment thread.
type Comment struct {
	ID     int    `json:"id"`
	Author string `json:"author"`
	// Date is formatted as YYYY-MM-DD.
	Date string `json:"date"`
	Text string `json:"text"`
}

// Result is the outcome of a store operation that may fail.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AnonymousAuthor is credited for uploads and comments made without a user name.
const AnonymousAuthor = "Usuario Anónimo"

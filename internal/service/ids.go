package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// StringIDFunc produces user ids and session tokens.
type StringIDFunc func() string

// IntIDFunc produces comment ids.
type IntIDFunc func() int

// Clock returns the current time.
type Clock func() time.Time

// NewUUID is the default StringIDFunc.
func NewUUID() string {
	return uuid.NewString()
}

// Counter returns an IntIDFunc yielding start, start+1, ... It is safe for concurrent use.
func Counter(start int) IntIDFunc {
	var mu sync.Mutex
	next := start
	return func() int {
		mu.Lock()
		defer mu.Unlock()
		id := next
		next++
		return id
	}
}

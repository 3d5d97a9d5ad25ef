// ABOUTME: User holds per-user proofreading preferences
// ABOUTME: Personal dictionary words are matched case-insensitively
package models

import (
	"strings"
	"time"
)

// User represents one user's proofreading preferences: a personal
// dictionary of words the corrector must leave alone, and an optional
// free-text instruction appended to the corrector prompt.
type User struct {
	ID           int64     `json:"id"`
	Dictionary   []string  `json:"dictionary"`
	GlobalPrompt string    `json:"global_prompt,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates a user with an empty dictionary.
func NewUser(id int64) *User {
	return &User{
		ID:         id,
		Dictionary: []string{},
		CreatedAt:  time.Now().UTC(),
	}
}

// HasWord reports whether word is already in the dictionary (case-insensitive).
func (u *User) HasWord(word string) bool {
	for _, w := range u.Dictionary {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}

// AddWord adds a word to the dictionary. Returns false if it was already there.
func (u *User) AddWord(word string) bool {
	word = strings.TrimSpace(word)
	if word == "" || u.HasWord(word) {
		return false
	}
	u.Dictionary = append(u.Dictionary, word)
	return true
}

// RemoveWord removes a word from the dictionary (case-insensitive).
// Returns false if the word was not present.
func (u *User) RemoveWord(word string) bool {
	for i, w := range u.Dictionary {
		if strings.EqualFold(w, word) {
			u.Dictionary = append(u.Dictionary[:i], u.Dictionary[i+1:]...)
			return true
		}
	}
	return false
}

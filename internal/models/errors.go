package models

import "errors"

var (
	// ErrUserExists is returned when the username is already registered.
	ErrUserExists = errors.New("username already taken")
	// ErrInvalidCredentials covers unknown users, wrong passwords and unreadable digests alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrArticleNotFound is returned when no article has the requested id.
	ErrArticleNotFound = errors.New("article not found")
	// ErrArticleUnavailable is returned when an article is missing or belongs to someone else.
	ErrArticleUnavailable = errors.New("article not found or not owned by caller")
)

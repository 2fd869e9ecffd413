package store

import "errors"

var (
	// ErrKeyNotFound is returned by [KVRepository.Get] for absent keys.
	ErrKeyNotFound = errors.New("key not found in local storage")

	// ErrSessionNotFound is returned by [SessionRepository.Get] when no
	// session is stored, or when the stored content is unreadable.
	ErrSessionNotFound = errors.New("local session not found")
)

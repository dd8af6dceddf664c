package project

import "errors"

var (
	// ErrProjectNotFound indicates no record matches the identifier.
	ErrProjectNotFound = errors.New("project not found")
	// ErrScoreOutOfRange indicates a score update outside [0, 1000].
	ErrScoreOutOfRange = errors.New("score must be between 0 and 1000")
)

package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateName  = errors.New("name already taken")
	ErrDuplicateScore = errors.New("score already recorded for this team, criterion and judge")
	ErrDuplicate      = errors.New("record already exists")
)

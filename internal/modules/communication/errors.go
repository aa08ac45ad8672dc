package communication

import "errors"

var (
	ErrNotFound     = errors.New("communication log not found")
	ErrBadReference = errors.New("referenced client or project does not exist")
)

package milestone

import "errors"

var (
	ErrNotFound         = errors.New("milestone not found")
	ErrAssigneeNotFound = errors.New("milestone assignee not found")
	ErrAlreadyAssigned  = errors.New("employee already assigned to this milestone")
	ErrBadReference     = errors.New("referenced record does not exist")
)

package project

import "errors"

var (
	ErrNotFound        = errors.New("project not found")
	ErrMemberNotFound  = errors.New("project member not found")
	ErrAlreadyAssigned = errors.New("employee already assigned to this project")
	ErrBadReference    = errors.New("referenced record does not exist")
)

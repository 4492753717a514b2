package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeAlreadyExists = errors.New("employee already exists")
	ErrInvalidPosition       = errors.New("position must be one of intern, staff, supervisor, manager")
	ErrInvalidRenamePolicy   = errors.New("rename policy must be overwrite or reject")
)

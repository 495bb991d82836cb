package core

import "errors"

var (
	ErrDBConn = errors.New("db connection failure")
	ErrMBConn = errors.New("message broker connection failure")

	ErrFieldIsEmpty    = errors.New("field is empty")
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateNombre = errors.New("nombre already exists")
)

package apperr

import "errors"

var (
	ErrNoParentPage = errors.New("no parent page configured")
	ErrEmptyTitle   = errors.New("title is empty")
)

package store

import "errors"

var (
	ErrNotFound          = errors.New("store: resource not found")
	ErrEmptyUserID       = errors.New("store: user id is empty")
	ErrNilReport         = errors.New("store: report is nil")
	ErrUnsupportedDriver = errors.New("store: unsupported database driver")
)

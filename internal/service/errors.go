package service

import "errors"

var (
	ErrEmptyName   = errors.New("name must not be empty")
	ErrNameTooLong = errors.New("name is too long")
)

package services

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadySaved = errors.New("lesson already added to favorites")
	ErrInvalidInput = errors.New("invalid input")
)

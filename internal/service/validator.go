package service

import "github.com/go-playground/validator/v10"

// NewValidator builds the shared request validator.
func NewValidator() *validator.Validate {
	return validator.New()
}

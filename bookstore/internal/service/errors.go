package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookstore-admin/bookstore/internal/repository"
)

var validate = validator.New()

type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

// ConflictError reports a request that is valid but clashes with the
// current state, like adding items to a checked-out cart.
type ConflictError struct {
	Msg string
}

func (e ConflictError) Error() string {
	return e.Msg
}

type AuthError struct {
	Msg string
}

func (e AuthError) Error() string {
	return e.Msg
}

// Validate checks the validate struct tags on in.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationError{Msg: err.Error()}
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s", fe.Field(), fe.Tag()))
		}
	}
	return ValidationError{Msg: strings.Join(msgs, "; ")}
}

func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

func IsConflict(err error) bool {
	var c ConflictError
	return errors.As(err, &c) ||
		errors.Is(err, repository.ErrAlreadyExists) ||
		errors.Is(err, repository.ErrInsufficientStock) ||
		errors.Is(err, repository.ErrReferenceViolated)
}

func IsAuth(err error) bool {
	var a AuthError
	return errors.As(err, &a)
}

func ptr[V any](v V) *V {
	return &v
}

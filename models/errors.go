package models

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ErrProductNotListed rejects a delete for a product outside the displayed list.
var ErrProductNotListed = fmt.Errorf("%w in the current list", ErrProductNotFound)

// ErrNoCategoriesAvailable blocks product creation until a category exists.
var ErrNoCategoriesAvailable = errors.New("no categories available: add a category first")

// ValidationError reports a missing or out-of-range input field.
// It is raised before any store call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StoreError wraps any failure returned by the record store.
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Collection, describe(e.Err))
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Collection: collection, Err: err}
}

// describe adds the SQLSTATE condition name to postgres errors,
// e.g. "insert or update violates foreign key constraint (foreign_key_violation)".
func describe(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Sprintf("%s (%s)", pqErr.Message, pqErr.Code.Name())
	}
	return err.Error()
}

package core

// validation.go checks add-row input before anything touches the store.
//
// Fields are checked in display order (item, price, quantity) and the first
// problem is returned, so a rejected add never leaves a partial row behind.

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// Field names reported in ValidationError.Field.
const (
	FieldItem     = "item"
	FieldPrice    = "price"
	FieldQuantity = "quantity"
)

// ValidationError reports a rejected add-row input.
type ValidationError struct {
	Field   string // Row field that failed
	Value   string // The rejected input
	Message string // Human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// rowInput is add-row input that passed validation.
type rowInput struct {
	item     string
	price    float64
	quantity float64
}

// validateRequest parses and checks raw add-row strings.
func validateRequest(item, price, quantity string) (rowInput, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return rowInput{}, &ValidationError{Field: FieldItem, Message: "required field is empty"}
	}

	p, err := ParseAmount(price)
	if err != nil {
		return rowInput{}, &ValidationError{Field: FieldPrice, Value: price, Message: err.Error()}
	}

	q, err := ParseAmount(quantity)
	if err != nil {
		return rowInput{}, &ValidationError{Field: FieldQuantity, Value: quantity, Message: err.Error()}
	}

	return rowInput{item: item, price: p, quantity: q}, nil
}

// validateValues checks add-row input that is already numeric.
func validateValues(item string, price, quantity float64) (rowInput, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return rowInput{}, &ValidationError{Field: FieldItem, Message: "required field is empty"}
	}
	if !finite(price) {
		return rowInput{}, &ValidationError{Field: FieldPrice, Value: FormatAmount(price), Message: errInvalidNumber.Error()}
	}
	if !finite(quantity) {
		return rowInput{}, &ValidationError{Field: FieldQuantity, Value: FormatAmount(quantity), Message: errInvalidNumber.Error()}
	}
	return rowInput{item: item, price: price, quantity: quantity}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

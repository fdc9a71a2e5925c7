package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidInput is matched by every payload rejection.
var ErrInvalidInput = errors.New("invalid input")

// ErrEmptyPatch rejects an update that names no recognized field.
var ErrEmptyPatch = fmt.Errorf("%w: no fields to update", ErrInvalidInput)

// ValidationError describes which field failed and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Validate trims the name in place and checks every field of the payload.
func (c *ItemCreate) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return invalid("name", "is required")
	}
	if err := validateName(c.Name); err != nil {
		return err
	}
	if c.Quantity.Set {
		if c.Quantity.Null {
			return invalid("quantity", "must not be null")
		}
		if err := validateQuantity(c.Quantity.Value); err != nil {
			return err
		}
	}
	if c.Category.Set {
		if c.Category.Null {
			return invalid("category", "must not be null")
		}
		if err := validateCategory(c.Category.Value); err != nil {
			return err
		}
	}
	if c.Purchased.Null {
		return invalid("purchased", "must not be null")
	}
	return nil
}

// Validate trims a present name in place and checks every present field.
// An empty patch is rejected with ErrEmptyPatch.
func (p *ItemPatch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	if p.Name.Set {
		if p.Name.Null {
			return invalid("name", "must not be null")
		}
		p.Name.Value = strings.TrimSpace(p.Name.Value)
		if err := validateName(p.Name.Value); err != nil {
			return err
		}
	}
	if p.Quantity.Set {
		if p.Quantity.Null {
			return invalid("quantity", "must not be null")
		}
		if err := validateQuantity(p.Quantity.Value); err != nil {
			return err
		}
	}
	if p.Category.Set {
		if p.Category.Null {
			return invalid("category", "must not be null")
		}
		if err := validateCategory(p.Category.Value); err != nil {
			return err
		}
	}
	if p.Purchased.Null {
		return invalid("purchased", "must not be null")
	}
	return nil
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 1 || n > NameMaxLength {
		return invalid("name", fmt.Sprintf("must be between 1 and %d characters", NameMaxLength))
	}
	return nil
}

func validateQuantity(q int64) error {
	if q < 1 {
		return invalid("quantity", "must be greater than or equal to 1")
	}
	return nil
}

func validateCategory(category string) error {
	if utf8.RuneCountInString(category) > CategoryMaxLength {
		return invalid("category", fmt.Sprintf("must be at most %d characters", CategoryMaxLength))
	}
	return nil
}

// ParseBoolQuery coerces a query-string flag. Only "true", "1", "yes" and "y"
// (any case) are true; every other value, including an empty one, is false.
func ParseBoolQuery(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}

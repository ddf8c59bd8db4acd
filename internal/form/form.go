// Package form populates profile-update form fields from the directory and
// validates the populated values against the field declarations.
package form

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strconv"

	"credstate/internal/domain"
	"credstate/internal/userinfo/ports"
	"credstate/pkg/platform/sentinel"
)

// PopulateFromDirectory reads the backing attribute of every declared field
// in one batched call. Absent attributes populate as empty values, not
// errors; a failed read is fatal because the update-profile verdict depends
// on a faithful population.
func PopulateFromDirectory(ctx context.Context, directory ports.Directory, identity domain.Identity, fields []domain.FormField) (map[string]string, error) {
	values := make(map[string]string, len(fields))
	if len(fields) == 0 {
		return values, nil
	}

	attributes := make([]string, 0, len(fields))
	for _, f := range fields {
		attributes = append(attributes, f.Attribute)
	}

	read, err := directory.ReadAttributes(ctx, identity, attributes)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, fmt.Errorf("populate form from directory: %w", err)
	}

	for _, f := range fields {
		values[f.Name] = read[f.Attribute]
	}
	return values, nil
}

// Validator checks populated form values against the field declarations.
type Validator struct{}

// NewValidator returns a form validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate implements ports.FormValidator. The first failing field is
// reported as a *ports.ValidationError; a malformed pattern declaration is a
// configuration error and fatal.
func (v *Validator) Validate(_ context.Context, fields []domain.FormField, values map[string]string) error {
	for _, f := range fields {
		if err := validateField(f, values[f.Name]); err != nil {
			return err
		}
	}
	return nil
}

func validateField(f domain.FormField, value string) error {
	if value == "" {
		if f.Required {
			return &ports.ValidationError{Field: f.Name, Reason: "value is required"}
		}
		return nil
	}
	if f.MinLength > 0 && len(value) < f.MinLength {
		return &ports.ValidationError{Field: f.Name, Reason: "value is too short"}
	}
	if f.MaxLength > 0 && len(value) > f.MaxLength {
		return &ports.ValidationError{Field: f.Name, Reason: "value is too long"}
	}

	switch f.Type {
	case domain.FormFieldEmail:
		if _, err := mail.ParseAddress(value); err != nil {
			return &ports.ValidationError{Field: f.Name, Reason: "value is not a valid email address"}
		}
	case domain.FormFieldNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return &ports.ValidationError{Field: f.Name, Reason: "value is not numeric"}
		}
	}

	if f.Pattern != "" {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return fmt.Errorf("field %q has invalid pattern: %w", f.Name, err)
		}
		if !re.MatchString(value) {
			return &ports.ValidationError{Field: f.Name, Reason: "value does not match the required pattern"}
		}
	}
	return nil
}

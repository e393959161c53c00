// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package validation provides struct validation using go-playground/validator
// v10 behind a thread-safe singleton instance, with error translation into
// the application's VALIDATION_ERROR response format.
//
//	type CustomersRequest struct {
//	    State string `validate:"required"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // respond 400 with apiErr
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/storelens/internal/models"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator. The instance caches
// struct metadata, so sharing it is both safe and faster.
func getValidator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Error returns a human-readable message for the failed rule.
func (e FieldError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field, e.Param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field, e.Param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", e.Field, e.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s failed validation rule %q", e.Field, e.Tag)
	}
}

// RequestValidationError aggregates the field errors of one request.
type RequestValidationError struct {
	Fields []FieldError
}

// Error joins the individual field messages.
func (e *RequestValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return strings.Join(msgs, "; ")
}

// ToAPIError converts the validation failure into the API error format.
func (e *RequestValidationError) ToAPIError() *models.APIError {
	details := map[string]interface{}{}
	if len(e.Fields) == 1 {
		details["field"] = e.Fields[0].Field
		details["tag"] = e.Fields[0].Tag
	} else {
		fields := make([]map[string]interface{}, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = map[string]interface{}{
				"field":   f.Field,
				"tag":     f.Tag,
				"message": f.Error(),
			}
		}
		details["fields"] = fields
	}
	return &models.APIError{
		Code:    "VALIDATION_ERROR",
		Message: e.Error(),
		Details: details,
	}
}

// ValidateStruct validates v against its `validate` tags. Returns nil
// when validation passes.
func ValidateStruct(v interface{}) *RequestValidationError {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Non-field error (e.g. passing a non-struct); treat as a
		// single opaque validation failure.
		return &RequestValidationError{Fields: []FieldError{{Field: "request", Tag: "invalid"}}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return &RequestValidationError{Fields: fields}
}

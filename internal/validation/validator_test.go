// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package validation

import (
	"strings"
	"testing"
)

type stateRequest struct {
	State string `validate:"required,max=100"`
}

type boundedRequest struct {
	Limit int `validate:"gte=1,lte=500"`
}

func TestValidateStructPasses(t *testing.T) {
	if err := ValidateStruct(&stateRequest{State: "California"}); err != nil {
		t.Errorf("Expected pass, got %v", err)
	}
}

func TestValidateStructRequired(t *testing.T) {
	err := ValidateStruct(&stateRequest{})
	if err == nil {
		t.Fatal("Expected validation failure for empty required field")
	}
	if len(err.Fields) != 1 {
		t.Fatalf("Got %d field errors, want 1", len(err.Fields))
	}
	if err.Fields[0].Field != "State" || err.Fields[0].Tag != "required" {
		t.Errorf("Field error = %+v, want State/required", err.Fields[0])
	}
	if !strings.Contains(err.Error(), "State is required") {
		t.Errorf("Error message = %q, want mention of required State", err.Error())
	}
}

func TestValidateStructBounds(t *testing.T) {
	if err := ValidateStruct(&boundedRequest{Limit: 100}); err != nil {
		t.Errorf("Limit 100 should pass, got %v", err)
	}
	if err := ValidateStruct(&boundedRequest{Limit: 0}); err == nil {
		t.Error("Limit 0 should fail gte=1")
	}
	if err := ValidateStruct(&boundedRequest{Limit: 501}); err == nil {
		t.Error("Limit 501 should fail lte=500")
	}
}

func TestToAPIError(t *testing.T) {
	err := ValidateStruct(&stateRequest{})
	if err == nil {
		t.Fatal("Expected validation failure")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message == "" {
		t.Error("Message is empty")
	}
	if apiErr.Details["field"] != "State" {
		t.Errorf("Details field = %v, want State", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultipleFields(t *testing.T) {
	type multiRequest struct {
		A string `validate:"required"`
		B string `validate:"required"`
	}

	err := ValidateStruct(&multiRequest{})
	if err == nil {
		t.Fatal("Expected validation failure")
	}
	if len(err.Fields) != 2 {
		t.Fatalf("Got %d field errors, want 2", len(err.Fields))
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details fields has wrong type: %T", apiErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("Got %d detail entries, want 2", len(fields))
	}
}

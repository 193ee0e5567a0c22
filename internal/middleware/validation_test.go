package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Test struct with validation tags
type testRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// Feature: pet-service, Property 8: Required field validation works
// Validates: Requirements 1.3
func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeNameField bool, includeCategoryField bool) bool {
			// Create request with some fields missing
			reqMap := make(map[string]interface{})

			if includeNameField {
				reqMap["name"] = "fido"
			}
			if includeCategoryField {
				reqMap["category"] = "dog"
			}

			allFieldsPresent := includeNameField && includeCategoryField

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var testReq testRequest
			err := DecodeAndValidate(req, &testReq)

			if allFieldsPresent {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Missing fields are reported by their json name, in declaration order
func TestMissingFieldsUseJSONNames(t *testing.T) {
	var testReq testRequest
	err := ValidateRequest(&testReq)
	if err == nil {
		t.Fatal("Expected validation error for empty struct")
	}

	missing := MissingFields(err)
	if len(missing) != 2 {
		t.Fatalf("Expected 2 missing fields, got %v", missing)
	}

	if missing[0] != "name" || missing[1] != "category" {
		t.Errorf("Expected [name category], got %v", missing)
	}
}

func TestMissingFieldsIgnoresOtherErrors(t *testing.T) {
	if fields := MissingFields(json.Unmarshal([]byte("{"), &struct{}{})); fields != nil {
		t.Errorf("Expected nil for a non-validation error, got %v", fields)
	}
}

// Empty strings count as missing, matching required-field semantics
func TestEmptyStringFailsRequired(t *testing.T) {
	req := testRequest{Name: "", Category: "dog"}

	err := ValidateRequest(&req)
	if err == nil {
		t.Fatal("Expected validation error for empty name")
	}

	missing := MissingFields(err)
	if len(missing) != 1 || missing[0] != "name" {
		t.Errorf("Expected [name], got %v", missing)
	}
}

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Test struct with validation tags
type testRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includeEmail bool, includeRating bool) bool {
			reqMap := make(map[string]interface{})
			if includeName {
				reqMap["name"] = "Jane Doe"
			}
			if includeEmail {
				reqMap["email"] = "jane@example.com"
			}
			if includeRating {
				reqMap["rating"] = 4
			}

			allFieldsPresent := includeName && includeEmail && includeRating

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var decoded testRequest
			err := DecodeAndValidate(req, &decoded)

			if allFieldsPresent {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_RatingRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ratings outside 1..5 are rejected", prop.ForAll(
		func(rating int) bool {
			reqMap := map[string]interface{}{
				"name":   "Jane Doe",
				"email":  "jane@example.com",
				"rating": rating,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var decoded testRequest
			err := DecodeAndValidate(req, &decoded)

			if rating >= 1 && rating <= 5 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-3, 10).SuchThat(func(v int) bool { return v != 0 }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFormatValidationErrorsIncludesFields(t *testing.T) {
	reqBody := []byte(`{"name":"Jane Doe","email":"not-an-email","rating":4}`)
	req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	var decoded testRequest
	err := DecodeAndValidate(req, &decoded)
	if err == nil {
		t.Fatal("expected a validation error for a malformed email")
	}

	validationErrors := FormatValidationErrors(err)
	if len(validationErrors) == 0 {
		t.Fatal("expected formatted validation errors")
	}
	for _, ve := range validationErrors {
		if ve.Field == "" || ve.Message == "" {
			t.Fatalf("incomplete validation error: %+v", ve)
		}
	}
}

func TestRespondWithValidationErrorsNamesFields(t *testing.T) {
	errs := []ValidationError{
		{Field: "Email", Message: "Invalid email format"},
		{Field: "Rating", Message: "Value is too long"},
	}

	w := httptest.NewRecorder()
	RespondWithValidationErrors(w, errs)

	if w.Code != 400 {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse error envelope: %v", err)
	}
	if !strings.Contains(response.Error, "Email") || !strings.Contains(response.Error, "Rating") {
		t.Fatalf("expected field names in error message, got %q", response.Error)
	}
}

package handler

import (
	"errors"
	"testing"

	"github.com/marketplace/commodity-api/internal/core/domain"
)

func TestValidator_FieldErrors(t *testing.T) {
	type payload struct {
		Name  string `json:"name"  validate:"required,max=3"`
		Kind  string `json:"kind"  validate:"omitempty,oneof=a b"`
		Count int    `json:"count" validate:"min=2"`
	}

	cases := []struct {
		name   string
		in     payload
		field  string
		reason string
	}{
		{"required", payload{Count: 2}, "name", "is required"},
		{"max", payload{Name: "abcd", Count: 2}, "name", "must be at most 3 characters"},
		{"oneof", payload{Name: "ab", Kind: "c", Count: 2}, "kind", "must be one of: a, b"},
		{"min number", payload{Name: "ab", Count: 1}, "count", "must be at least 2"},
	}

	v := NewValidator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ve *domain.ValidationError
			if err := v.Validate(tc.in); !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Field != tc.field || ve.Reason != tc.reason {
				t.Fatalf("got %s %q, want %s %q", ve.Field, ve.Reason, tc.field, tc.reason)
			}
		})
	}

	if err := v.Validate(payload{Name: "ab", Count: 2}); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

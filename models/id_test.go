package models

import (
	"errors"
	"testing"
)

func TestParseIDs(t *testing.T) {
	valid := "65a1b2c3d4e5f6a7b8c9d0e1"

	id, err := ParseUserID(valid)
	if err != nil {
		t.Fatalf("parse valid id: %v", err)
	}
	if got := id.ObjectID().Hex(); got != valid {
		t.Fatalf("round trip mismatch: %s", got)
	}

	for _, bad := range []string{
		"",
		"65a1b2c3",                  // too short
		"65a1b2c3d4e5f6a7b8c9d0e1a", // too long
		"65a1b2c3d4e5f6a7b8c9d0zz",  // non-hex
		"not-an-object-id-at-all!",
	} {
		if _, err := ParseMealID(bad); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID for %q, got %v", bad, err)
		}
	}
}

func TestIsValidIDAcceptsUppercaseHex(t *testing.T) {
	if !IsValidID("65A1B2C3D4E5F6A7B8C9D0E1") {
		t.Fatal("uppercase hex must be accepted")
	}
}

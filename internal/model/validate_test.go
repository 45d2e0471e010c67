package model

import (
	"errors"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "simple", raw: "1", want: 1},
		{name: "large", raw: "123456789", want: 123456789},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-3", wantErr: true},
		{name: "letters", raw: "abc", wantErr: true},
		{name: "float", raw: "1.5", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "trailing junk", raw: "1x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			id, err := ParseID(tt.raw)

			// Assert
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Errorf("ParseID(%q) error = %v, want ErrInvalidID", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseID(%q) unexpected error: %v", tt.raw, err)
			}
			if id != tt.want {
				t.Errorf("ParseID(%q) = %d, want %d", tt.raw, id, tt.want)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "plain", email: "alice@example.com", want: true},
		{name: "subdomain", email: "a@mail.example.co.uk", want: true},
		{name: "missing at", email: "alice.example.com", want: false},
		{name: "missing domain dot", email: "alice@example", want: false},
		{name: "spaces", email: "alice @example.com", want: false},
		{name: "empty", email: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidString(t *testing.T) {
	if !IsValidString("x") {
		t.Error("IsValidString(x) should be true")
	}
	if IsValidString("") {
		t.Error("IsValidString(empty) should be false")
	}
	if IsValidString("   ") {
		t.Error("IsValidString(whitespace) should be false")
	}
}

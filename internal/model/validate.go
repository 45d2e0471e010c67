package model

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Validation errors. The text of these errors is returned verbatim in
// 400 responses, so it stays aligned with what the web UI expects.
var (
	ErrInvalidID     = errors.New("ID must be a positive integer")
	ErrProductName   = errors.New(`field "name" is required and must be a non-empty string`)
	ErrProductValue  = errors.New(`field "value" is required and must be a non-negative number`)
	ErrCustomerName  = errors.New(`field "name" is required and must be a non-empty string`)
	ErrCustomerEmail = errors.New(`field "email" is required and must have a valid format`)
	ErrOrderItems    = errors.New(`field "items" is required and must be a non-empty array`)
	ErrOrderItem     = errors.New(`every item must have a positive integer "id" and "quantity"`)
	ErrOrderCustomer = errors.New(`field "customer_id" is required and must be a positive integer`)
	ErrUsername      = errors.New(`field "username" is required and must be a non-empty string`)
	ErrPassword      = errors.New(`field "password" is required and must be a non-empty string`)
	ErrUserType      = errors.New("invalid user type, must be 'admin' or 'user'")
	ErrNoFields      = errors.New("no fields to update")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidString reports whether the value is a non-empty string after
// trimming whitespace.
func IsValidString(value string) bool {
	return strings.TrimSpace(value) != ""
}

// IsValidEmail reports whether the value has a plausible email shape.
func IsValidEmail(value string) bool {
	return IsValidString(value) && emailPattern.MatchString(strings.TrimSpace(value))
}

// ParseID parses a route parameter as a positive integer identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

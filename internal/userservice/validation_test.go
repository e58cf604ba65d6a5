package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moonhalo/blogapi/internal/common"
)

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		valid    bool
	}{
		{name: "valid", username: "testuser", valid: true},
		{name: "with digits", username: "user123", valid: true},
		{name: "empty", username: "", valid: false},
		{name: "too short", username: "ab", valid: false},
		{name: "illegal characters", username: "user name!", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateUsername(v, tc.username)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		valid bool
	}{
		{name: "valid", email: "testuser@example.com", valid: true},
		{name: "with plus tag", email: "test+tag@example.co.uk", valid: true},
		{name: "empty", email: "", valid: false},
		{name: "missing domain", email: "testuser@", valid: false},
		{name: "missing at sign", email: "testuser.example.com", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateEmail(v, tc.email)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "valid simple password", password: "secret123", valid: true},
		{name: "minimum length", password: "12345678", valid: true},
		{name: "empty", password: "", valid: false},
		{name: "too short", password: "1234567", valid: false},
		{name: "over bcrypt limit", password: string(make([]byte, 73)), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidateWebsite(t *testing.T) {
	testCases := []struct {
		name    string
		website string
		valid   bool
	}{
		{name: "https url", website: "https://example.com", valid: true},
		{name: "http url", website: "http://example.com", valid: true},
		{name: "empty is allowed", website: "", valid: true},
		{name: "missing scheme", website: "example.com", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateWebsite(v, tc.website)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

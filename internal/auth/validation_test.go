package auth

import (
	"errors"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"bob", "shop_admin", "jane-doe", "A1_"}
	for _, name := range valid {
		if err := validateUsername(name); err != nil {
			t.Errorf("validateUsername(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "ab", "has space", "semi;colon", "ünïcode", "a' OR 1=1--"}
	for _, name := range invalid {
		err := validateUsername(name)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("validateUsername(%q) = %v, want ErrValidation", name, err)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if err := validateEmail("alice@example.com"); err != nil {
		t.Errorf("valid address rejected: %v", err)
	}
	for _, addr := range []string{"", "not-an-email", "@example.com"} {
		if err := validateEmail(addr); !errors.Is(err, ErrValidation) {
			t.Errorf("validateEmail(%q) = %v, want ErrValidation", addr, err)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Password1", true},
		{"xK9mPq2rT", true},
		{"password", false},  // no upper, no digit
		{"PASSWORD1", false}, // no lower
		{"Password", false},  // no digit
		{"Pw1short", true},
		{"Pw1abc", false}, // too short
		{"12345678", false},
	}
	for _, tc := range cases {
		err := validatePassword(tc.password)
		if tc.ok && err != nil {
			t.Errorf("validatePassword(%q) = %v, want nil", tc.password, err)
		}
		if !tc.ok && !errors.Is(err, ErrValidation) {
			t.Errorf("validatePassword(%q) = %v, want ErrValidation", tc.password, err)
		}
	}
}

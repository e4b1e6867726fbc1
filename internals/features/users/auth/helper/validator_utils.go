package helpers

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRe  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	letterRe = regexp.MustCompile(`[A-Za-z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
)

const minPasswordLen = 8

func isAlphaNumeric(s string) bool {
	return letterRe.MatchString(s) && digitRe.MatchString(s)
}

func isValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidatePassword(pw string) error {
	if utf8.RuneCountInString(pw) < minPasswordLen {
		return errors.New("Password must be at least 8 characters")
	}
	if !isAlphaNumeric(pw) {
		return errors.New("Password must contain letters and numbers")
	}
	return nil
}

func ValidateRegisterInput(name, email, password string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return errors.New("Name must be between 2 and 100 characters")
	}
	if !isValidEmail(strings.TrimSpace(email)) {
		return errors.New("Invalid email format")
	}
	return ValidatePassword(password)
}

func ValidateLoginInput(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return errors.New("Email and password are required")
	}
	return nil
}

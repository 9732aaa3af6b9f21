package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// EmailRegex validates email format
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// ChannelIDRegex validates platform channel/video identifiers
	ChannelIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

	// PreferenceKeyRegex validates preference keys (dotted lowercase paths)
	PreferenceKeyRegex = regexp.MustCompile(`^[a-z0-9_]+(\.[a-z0-9_]+)*$`)

	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
)

// ValidateEmail validates email address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email is too long (max 254 characters)")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateUsername validates username
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters")
	}
	if len(username) > 50 {
		return fmt.Errorf("username is too long (max 50 characters)")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username contains invalid characters (only letters, numbers, _, - allowed)")
	}
	return nil
}

// ValidatePassword validates password
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if len(password) > 128 {
		return fmt.Errorf("password is too long (max 128 characters)")
	}
	return nil
}

// ValidateSessionName validates a session display name
func ValidateSessionName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("session name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("session name is too long (max 100 characters)")
	}
	return nil
}

// ValidateChannelID validates a platform channel or video identifier
func ValidateChannelID(id string) error {
	if id == "" {
		return fmt.Errorf("channel id is required")
	}
	if len(id) > 100 {
		return fmt.Errorf("channel id is too long (max 100 characters)")
	}
	if !ChannelIDRegex.MatchString(id) {
		return fmt.Errorf("channel id contains invalid characters")
	}
	return nil
}

// ValidatePreferenceKey validates a settings key
func ValidatePreferenceKey(key string) error {
	if key == "" {
		return fmt.Errorf("preference key is required")
	}
	if len(key) > 128 {
		return fmt.Errorf("preference key is too long (max 128 characters)")
	}
	if !PreferenceKeyRegex.MatchString(key) {
		return fmt.Errorf("preference key must be dotted lowercase segments")
	}
	return nil
}

// ValidatePreferenceValue bounds a settings value
func ValidatePreferenceValue(value string) error {
	if len(value) > 4096 {
		return fmt.Errorf("preference value is too long (max 4096 bytes)")
	}
	return nil
}

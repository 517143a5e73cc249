package auth

import (
	"fmt"
	"os"
	"strings"
)

// weakPasswordList holds common passwords that are rejected outright.
var weakPasswordList = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"admin123",
	"password123",
	"123456789",
	"12345678",
	"qwerty",
	"abc123",
	"letmein",
	"welcome",
	"monkey",
	"1234567890",
	"password1",
	"admin1",
	"test",
	"test123",
	"default",
	"root",
}

const (
	// minPasswordLength applies to both the admin and the demo viewer slot.
	minPasswordLength = 12
)

// ValidateAdminCredentials checks the admin account environment variables at
// startup. The API server refuses to start without a usable admin account,
// since the admin is the only principal allowed to trigger seeding runs.
//
// Requirements:
//   - ADMIN_USER must not be empty
//   - ADMIN_USER_PASSWORD must not be empty, at least 12 characters, and not
//     match any weak password pattern
//
// Error messages are safe to log; they never include the password itself.
func ValidateAdminCredentials() error {
	user := os.Getenv("ADMIN_USER")
	pass := os.Getenv("ADMIN_USER_PASSWORD")

	if user == "" {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER must not be empty")
	}

	if pass == "" {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be empty")
	}

	if len(pass) < minPasswordLength {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must be at least %d characters (current length: %d)", minPasswordLength, len(pass))
	}

	// Numeric and keyboard patterns are checked before the blacklist so they
	// get their own error message instead of the prefix one.
	if isSimpleNumericPattern(pass) {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be a simple numeric pattern")
	}

	if isKeyboardPattern(pass) {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be a keyboard pattern")
	}

	lowerPass := strings.ToLower(pass)
	for _, weak := range weakPasswordList {
		if lowerPass == weak {
			return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be a weak password")
		}

		// Catches padded variations like "admin1234567890".
		if strings.HasPrefix(lowerPass, weak) && len(pass) < minPasswordLength+5 {
			return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be based on common weak passwords")
		}
	}

	return nil
}

// isSimpleNumericPattern checks if the password is a simple numeric sequence.
// Examples: "111111111111", "123123123123"
func isSimpleNumericPattern(pass string) bool {
	if len(pass) < minPasswordLength {
		return false
	}

	// Check for repeated digits
	if isRepeatedChar(pass) {
		return true
	}

	// Check for simple sequences like "123456789012"
	hasOnlyDigits := true
	for _, ch := range pass {
		if ch < '0' || ch > '9' {
			hasOnlyDigits = false
			break
		}
	}

	if !hasOnlyDigits {
		return false
	}

	// Check for ascending or descending sequences
	isAscending := true
	isDescending := true
	for i := 1; i < len(pass); i++ {
		diff := int(pass[i]) - int(pass[i-1])
		// Ascending: diff is 1 or -9 (wraps 9->0)
		if diff != 1 && diff != -9 {
			isAscending = false
		}
		// Descending: diff is -1 or 9 (wraps 0->9)
		if diff != -1 && diff != 9 {
			isDescending = false
		}
	}

	return isAscending || isDescending
}

// isRepeatedChar checks if the password consists of a single repeated character.
// Example: "aaaaaaaaaaaa"
func isRepeatedChar(pass string) bool {
	if len(pass) == 0 {
		return false
	}

	first := pass[0]
	for i := 1; i < len(pass); i++ {
		if pass[i] != first {
			return false
		}
	}
	return true
}

// isKeyboardPattern checks if the password is a keyboard pattern.
// Examples: "qwertyuiop", "asdfghjkl"
var keyboardPatterns = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"qwerty",
	"asdfgh",
	"zxcvb",
}

func isKeyboardPattern(pass string) bool {
	lowerPass := strings.ToLower(pass)

	for _, pattern := range keyboardPatterns {
		if strings.Contains(lowerPass, pattern) {
			return true
		}
		// Check reverse pattern
		if strings.Contains(lowerPass, reverse(pattern)) {
			return true
		}
	}

	return false
}

// reverse returns the reversed string
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// ValidateViewerCredentials checks the optional demo viewer account at
// startup. Unlike the admin check it never fails startup: a misconfigured
// viewer slot is logged and unset, and the server runs admin-only. The demo
// account only reads questions, so losing it is an inconvenience rather than
// an outage.
func ValidateViewerCredentials(logger interface{ Info(msg string, args ...any); Warn(msg string, args ...any) }) error {
	demoUser := os.Getenv("DEMO_USER")
	demoPass := os.Getenv("DEMO_USER_PASSWORD")
	adminUser := os.Getenv("ADMIN_USER")

	if demoUser == "" {
		logger.Info("viewer role not configured - running in admin-only mode")
		return nil
	}

	if demoPass == "" {
		logger.Warn("DEMO_USER_PASSWORD is empty - disabling viewer role")
		_ = os.Unsetenv("DEMO_USER")
		return nil
	}

	if demoUser == adminUser {
		logger.Warn("DEMO_USER cannot be the same as ADMIN_USER - disabling viewer role")
		_ = os.Unsetenv("DEMO_USER")
		_ = os.Unsetenv("DEMO_USER_PASSWORD")
		return nil
	}

	if len(demoPass) < minPasswordLength {
		logger.Warn("DEMO_USER_PASSWORD must be at least 12 characters - disabling viewer role")
		_ = os.Unsetenv("DEMO_USER")
		_ = os.Unsetenv("DEMO_USER_PASSWORD")
		return nil
	}

	lowerPass := strings.ToLower(demoPass)
	for _, weak := range weakPasswordList {
		if lowerPass == weak || strings.HasPrefix(lowerPass, weak) {
			logger.Warn("DEMO_USER_PASSWORD is a weak password - disabling viewer role",
				"hint", "avoid common passwords")
			_ = os.Unsetenv("DEMO_USER")
			_ = os.Unsetenv("DEMO_USER_PASSWORD")
			return nil
		}
	}

	logger.Info("viewer role configured successfully", "user", demoUser)
	return nil
}

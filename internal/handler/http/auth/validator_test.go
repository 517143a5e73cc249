package auth

import (
	"strings"
	"testing"
)

func TestValidateAdminCredentials(t *testing.T) {
	tests := []struct {
		name          string
		user          string
		pass          string
		wantErr       bool
		errorContains string
	}{
		{
			name:          "empty username",
			user:          "",
			pass:          "CuratorStrongPass1!",
			wantErr:       true,
			errorContains: "ADMIN_USER must not be empty",
		},
		{
			name:          "empty password",
			user:          "curator",
			pass:          "",
			wantErr:       true,
			errorContains: "ADMIN_USER_PASSWORD must not be empty",
		},
		{
			name:          "both empty",
			user:          "",
			pass:          "",
			wantErr:       true,
			errorContains: "ADMIN_USER must not be empty",
		},
		{
			name:          "password too short",
			user:          "curator",
			pass:          "Short123!@#",
			wantErr:       true,
			errorContains: "must be at least 12 characters",
		},
		{
			name:    "password exactly 12 chars",
			user:    "curator",
			pass:    "ValidPass12!",
			wantErr: false,
		},
		{
			// Short weak entries trip the length check before the blacklist.
			name:          "weak password caught by length",
			user:          "curator",
			pass:          "password",
			wantErr:       true,
			errorContains: "must be at least 12 characters",
		},
		{
			name:          "weak password padded with digits",
			user:          "curator",
			pass:          "admin123456789",
			wantErr:       true,
			errorContains: "must not be based on common weak passwords",
		},
		{
			name:          "weak password case variation",
			user:          "curator",
			pass:          "Password1234",
			wantErr:       true,
			errorContains: "must not be based on common weak passwords",
		},
		{
			name:          "repeated digit",
			user:          "curator",
			pass:          "111111111111",
			wantErr:       true,
			errorContains: "must not be a simple numeric pattern",
		},
		{
			name:          "ascending digit sequence",
			user:          "curator",
			pass:          "123456789012",
			wantErr:       true,
			errorContains: "must not be a simple numeric pattern",
		},
		{
			name:          "keyboard pattern",
			user:          "curator",
			pass:          "qwertyuiopas",
			wantErr:       true,
			errorContains: "must not be a keyboard pattern",
		},
		{
			name:          "keyboard pattern uppercase",
			user:          "curator",
			pass:          "QWERTYUIOPAS",
			wantErr:       true,
			errorContains: "must not be a keyboard pattern",
		},
		{
			name:    "strong mixed-case password",
			user:    "curator",
			pass:    "MyStr0ng!Pass@2026",
			wantErr: false,
		},
		{
			name:    "strong passphrase",
			user:    "curator",
			pass:    "CorrectHorseBatteryStaple42!",
			wantErr: false,
		},
		{
			name:    "strong password with spaces",
			user:    "curator",
			pass:    "What Is Justice 2026!",
			wantErr: false,
		},
		{
			name:    "non-ascii password",
			user:    "curator",
			pass:    "パスワード安全12345!",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADMIN_USER", tt.user)
			t.Setenv("ADMIN_USER_PASSWORD", tt.pass)

			err := ValidateAdminCredentials()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ValidateAdminCredentials() expected error but got nil")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("ValidateAdminCredentials() error = %v, should contain %q", err, tt.errorContains)
				}
			} else if err != nil {
				t.Errorf("ValidateAdminCredentials() unexpected error = %v", err)
			}
		})
	}
}

func TestIsSimpleNumericPattern(t *testing.T) {
	tests := []struct {
		name string
		pass string
		want bool
	}{
		{"all same digit", "111111111111", true},
		{"all zeros", "000000000000", true},
		{"ascending sequence", "123456789012", true},
		{"descending sequence", "987654321098", true},
		{"shuffled digits", "192837465012", false},
		{"contains letters", "1234567890ab", false},
		{"too short", "12345", false},
		{"random digits", "847293016582", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSimpleNumericPattern(tt.pass); got != tt.want {
				t.Errorf("isSimpleNumericPattern(%q) = %v, want %v", tt.pass, got, tt.want)
			}
		})
	}
}

func TestIsRepeatedChar(t *testing.T) {
	tests := []struct {
		name string
		pass string
		want bool
	}{
		{"all same letter", "aaaaaaaaaa", true},
		{"all same digit", "0000000000", true},
		{"one odd character", "aaabaaaa", false},
		{"single character", "a", true},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRepeatedChar(tt.pass); got != tt.want {
				t.Errorf("isRepeatedChar(%q) = %v, want %v", tt.pass, got, tt.want)
			}
		})
	}
}

func TestIsKeyboardPattern(t *testing.T) {
	tests := []struct {
		name string
		pass string
		want bool
	}{
		{"qwerty row", "qwertyuiop", true},
		{"qwerty uppercase", "QWERTYUIOP", true},
		{"asdf row", "asdfghjkl", true},
		{"qwerty embedded", "myqwertypass", true},
		{"reverse qwerty", "poiuytrewq", true},
		{"ordinary word", "randompassword", false},
		{"letters and digits", "pass123word456", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isKeyboardPattern(tt.pass); got != tt.want {
				t.Errorf("isKeyboardPattern(%q) = %v, want %v", tt.pass, got, tt.want)
			}
		})
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple string", "hello", "olleh"},
		{"single character", "a", "a"},
		{"empty string", "", ""},
		{"letters and digits", "abc123", "321cba"},
		{"multibyte runes", "こんにちは", "はちにんこ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reverse(tt.input); got != tt.want {
				t.Errorf("reverse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Every entry in the blacklist must be rejected one way or another, whether
// by the length check or by the pattern checks.
func TestWeakPasswordList_AllRejected(t *testing.T) {
	for _, weak := range weakPasswordList {
		t.Run(weak, func(t *testing.T) {
			t.Setenv("ADMIN_USER", "curator")
			t.Setenv("ADMIN_USER_PASSWORD", weak)

			if err := ValidateAdminCredentials(); err == nil {
				t.Errorf("expected weak password %q to be rejected, but it was accepted", weak)
			}
		})
	}
}

func TestValidateAdminCredentials_RealisticStrongPasswords(t *testing.T) {
	strongPasswords := []string{
		"MyC0mplex!Pass@2026",
		"xK9$mP2@nQ5#vR8&wL3%",
		"CorrectHorseBatteryStaple42!",
		"Tr0ub4dor&3Extended",
		"aB3$fG7&jK0#mN9^",
	}

	for _, pass := range strongPasswords {
		t.Run(pass[:8], func(t *testing.T) {
			t.Setenv("ADMIN_USER", "curator")
			t.Setenv("ADMIN_USER_PASSWORD", pass)

			if err := ValidateAdminCredentials(); err != nil {
				t.Errorf("expected strong password %q to be accepted, but got error: %v", pass, err)
			}
		})
	}
}

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	// Should return PHC format string starting with $argon2id$
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("HashPassword() = %q, want prefix $argon2id$", hash)
	}

	// Salted: two hashes of the same password differ.
	other, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == other {
		t.Error("HashPassword() produced identical hashes for the same password")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name       string
		password   string
		storedHash string
		wantMatch  bool
		wantErr    error
	}{
		{
			name:       "correct password",
			password:   "correct-horse",
			storedHash: hash,
			wantMatch:  true,
		},
		{
			name:       "wrong password",
			password:   "battery-staple",
			storedHash: hash,
			wantMatch:  false,
		},
		{
			name:       "non argon2id hash",
			password:   "correct-horse",
			storedHash: "sha256:abcdef",
			wantErr:    ErrUnknownHashType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := VerifyPassword(tt.password, tt.storedHash)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("VerifyPassword() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifyPassword() error = %v", err)
			}
			if match != tt.wantMatch {
				t.Errorf("VerifyPassword() = %v, want %v", match, tt.wantMatch)
			}
		})
	}
}

func TestVerifyPassword_MalformedParamsDoNotPanic(t *testing.T) {
	// t=0 makes the argon2 library panic; VerifyPassword must turn it into an error.
	malformed := "$argon2id$v=19$m=47104,t=0,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g"
	match, err := VerifyPassword("anything", malformed)
	if match {
		t.Error("VerifyPassword() matched a malformed hash")
	}
	if err == nil {
		t.Error("VerifyPassword() expected error for malformed hash")
	}
}

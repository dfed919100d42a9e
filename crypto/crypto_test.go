// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	crypto := NewCrypto()
	password := "testpassword123"

	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "" {
		t.Error("Hash should not be empty")
	}

	hash2, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("Second HashPassword failed: %v", err)
	}

	if hash == hash2 {
		t.Error("Two hashes of same password should be different (due to salt)")
	}
}

func TestVerifyPassword(t *testing.T) {
	crypto := NewCrypto()
	password := "testpassword123"
	wrongPassword := "wrongpassword"

	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if err := crypto.VerifyPassword(password, hash); err != nil {
		t.Errorf("VerifyPassword failed for correct password: %v", err)
	}

	if err := crypto.VerifyPassword(wrongPassword, hash); err == nil {
		t.Error("VerifyPassword should fail for wrong password")
	}

	if err := crypto.VerifyPassword(password, "invalid-hash"); err == nil {
		t.Error("VerifyPassword should fail for invalid hash")
	}
}

func TestGenerateRandomString(t *testing.T) {
	token, err := GenerateRandomString("st_", 16, "hex")
	if err != nil {
		t.Fatalf("GenerateRandomString failed: %v", err)
	}
	if !strings.HasPrefix(token, "st_") {
		t.Errorf("Expected prefix st_, got %s", token)
	}
	if len(token) != 3+32 {
		t.Errorf("Expected 35 characters, got %d", len(token))
	}

	token2, err := GenerateRandomString("st_", 16, "hex")
	if err != nil {
		t.Fatalf("Second GenerateRandomString failed: %v", err)
	}
	if token == token2 {
		t.Error("Expected different tokens on successive calls")
	}

	if _, err := GenerateRandomString("", 16, "rot13"); err == nil {
		t.Error("Expected error for unsupported encoding")
	}
}

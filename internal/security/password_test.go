package security

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	if err := CheckPassword(hash, "secret123"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}

	if err := CheckPassword(hash, "secret124"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	h1, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	h2, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (random salt)")
	}
}

package security

import (
	"strings"
	"testing"

	"github.com/shopcartlabs/shopcart-backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	// Small parameters keep the test fast.
	return config.PasswordConfig{
		ArgonMemory:  8 * 1024,
		ArgonTime:    1,
		ArgonThreads: 1,
		SaltLength:   16,
		KeyLength:    32,
	}
}

func TestHashAndVerify(t *testing.T) {
	encoded, err := HashPassword("SuperSecret123!", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %s", encoded)
	}

	ok, err := VerifyPassword("SuperSecret123!", encoded)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPassword("wrong", encoded)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch")
	}
}

func TestHashEmptyPassword(t *testing.T) {
	if _, err := HashPassword("", testPasswordConfig()); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestHashesAreSalted(t *testing.T) {
	cfg := testPasswordConfig()
	first, err := HashPassword("same-password", cfg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := HashPassword("same-password", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("expected different salts to produce different hashes")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("pw", "not-a-hash"); err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}

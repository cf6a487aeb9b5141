package auth_test

import (
	"testing"

	"github.com/fscope/fscope-server/service/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !auth.CheckPassword("correct horse battery staple", hash) {
		t.Error("correct password did not verify")
	}
	if auth.CheckPassword("wrong password", hash) {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := auth.HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := auth.HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	if auth.CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Error("malformed stored hash must verify as false, not panic or pass")
	}
	if auth.CheckPassword("anything", "") {
		t.Error("empty stored hash must verify as false")
	}
}

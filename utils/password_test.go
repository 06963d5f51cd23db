package utils

import "testing"

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("expected hash to differ from the plaintext")
	}

	if !CheckPassword("correct horse battery staple", hash) {
		t.Fatal("expected the original password to verify")
	}
	if CheckPassword("wrong password", hash) {
		t.Fatal("expected a wrong password to fail verification")
	}
}

package crypto

import "testing"

func TestNewResetToken(t *testing.T) {
	cleartext, digest, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken() unexpected error: %v", err)
	}

	if len(cleartext) != 40 {
		t.Errorf("NewResetToken() cleartext length = %d, want 40 hex chars", len(cleartext))
	}
	if len(digest) != 64 {
		t.Errorf("NewResetToken() digest length = %d, want 64 hex chars", len(digest))
	}
	if cleartext == digest {
		t.Error("NewResetToken() cleartext equals digest")
	}
	if HashResetToken(cleartext) != digest {
		t.Error("NewResetToken() digest does not match HashResetToken(cleartext)")
	}
}

func TestNewResetTokenUnique(t *testing.T) {
	t1, _, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken() unexpected error: %v", err)
	}
	t2, _, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken() unexpected error: %v", err)
	}
	if t1 == t2 {
		t.Error("NewResetToken() produced the same token twice")
	}
}

func TestHashResetTokenDeterministic(t *testing.T) {
	if HashResetToken("abc") != HashResetToken("abc") {
		t.Error("HashResetToken() not deterministic")
	}
	if HashResetToken("abc") == HashResetToken("abd") {
		t.Error("HashResetToken() collision on different inputs")
	}
}

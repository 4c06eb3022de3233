package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secret123!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "Secret123!" {
		t.Fatalf("hash equals plain password")
	}

	if got := h.Verify(hash, "Secret123!"); got != VerifySuccess {
		t.Fatalf("expected VerifySuccess, got %v", got)
	}
	if got := h.Verify(hash, "wrong"); got != VerifyFailed {
		t.Fatalf("expected VerifyFailed for wrong password, got %v", got)
	}
}

func TestPasswordHasher_MalformedHashFails(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)

	for _, hash := range []string{"", "garbage", "$2a$xx$nope"} {
		if got := h.Verify(hash, "anything"); got != VerifyFailed {
			t.Fatalf("expected VerifyFailed for hash %q, got %v", hash, got)
		}
	}
}

func TestPasswordHasher_RehashNeeded(t *testing.T) {
	t.Parallel()

	low := NewPasswordHasher(bcrypt.MinCost)
	hash, err := low.Hash("pw")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	high := NewPasswordHasher(bcrypt.MinCost + 1)
	if got := high.Verify(hash, "pw"); got != VerifySuccessRehashNeeded {
		t.Fatalf("expected VerifySuccessRehashNeeded, got %v", got)
	}
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(-1)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to DefaultCost, got %d", h.cost)
	}
}

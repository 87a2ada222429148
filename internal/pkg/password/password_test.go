package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("pw123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected PHC argon2id prefix, got %q", hash)
	}
	if !Verify("pw123", hash) {
		t.Fatalf("expected password to verify against its own hash")
	}
	if Verify("pw124", hash) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := Hash("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ (fresh salt per call)")
	}
	if !Verify("same-password", h1) || !Verify("same-password", h2) {
		t.Fatalf("both hashes must still verify")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=3,p=4$short",
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$!!!",
		"$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$aGFzaA",
	}
	for _, tc := range cases {
		if Verify("anything", tc) {
			t.Fatalf("malformed hash %q must not verify", tc)
		}
	}
}

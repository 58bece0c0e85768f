package hasher

import "testing"

func TestHash_SaltsEveryCall(t *testing.T) {
	first, err := Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same password")
	}
	if first == "s3cret" {
		t.Fatalf("hash must not equal the plaintext")
	}
}

func TestVerify(t *testing.T) {
	h, err := Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !Verify("correct horse", h) {
		t.Fatalf("expected matching password to verify")
	}
	if Verify("wrong horse", h) {
		t.Fatalf("expected mismatched password to fail")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	if Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash must never verify")
	}
	if Verify("anything", "") {
		t.Fatalf("empty hash must never verify")
	}
}

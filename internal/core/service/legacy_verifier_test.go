package service

import "testing"

// Known vectors pin the legacy construction bit-for-bit. If any of these
// fail the verifier has drifted and every legacy account is locked out.
func TestLegacyVerifier_KnownVectors(t *testing.T) {
	v := LegacyVerifier{}

	cases := []struct {
		name      string
		plaintext string
		stored    string
	}{
		{
			name:      "reference vector",
			plaintext: "password123",
			stored:    "a1b2c3d4:282f1c5bb6cca88e0459a347172c0fde8b48c3071219527249da0679a9d127f8",
		},
		{
			name:      "punctuation in password",
			plaintext: "s3cret!",
			stored:    "5e8f13aa:cb14f07328b6ae93b6aad71d937d46d2f06f47fc44ac381a5e29d2e5149c3962",
		},
		{
			name:      "short salt",
			plaintext: "open sesame",
			stored:    "fe12:0e95731cd46b1ec6e611119136a15ef3a8a4b951028b40a6f5d9351509114739",
		},
	}

	for _, tc := range cases {
		if !v.Verify(tc.plaintext, tc.stored) {
			t.Errorf("%s: correct password did not verify", tc.name)
		}
		if v.Verify(tc.plaintext+"x", tc.stored) {
			t.Errorf("%s: wrong password verified", tc.name)
		}
		if v.Verify("", tc.stored) {
			t.Errorf("%s: empty password verified", tc.name)
		}
	}
}

func TestLegacyVerifier_SaltChangesDigest(t *testing.T) {
	v := LegacyVerifier{}

	// Same password under a different salt must produce a different stored
	// value, and each must verify only with its own salt in place.
	a := LegacyHash("a1b2c3d4", "password123")
	b := LegacyHash("00000000", "password123")
	if a == b {
		t.Fatalf("distinct salts produced identical hashes")
	}
	if b != "00000000:0af51a4ad9fd643b7eb415f85aabfbc9b4269e9238a8f8867deebfcad43525e7" {
		t.Fatalf("unexpected hash for zero salt: %s", b)
	}
	if !v.Verify("password123", a) || !v.Verify("password123", b) {
		t.Fatalf("round-trip verification failed")
	}
}

func TestLegacyVerifier_MalformedStoredValues(t *testing.T) {
	v := LegacyVerifier{}

	for _, stored := range []string{
		"",
		"no-separator",
		"salt:",
		":282f1c5bb6cca88e0459a347172c0fde8b48c3071219527249da0679a9d127f8",
	} {
		if stored == ":282f1c5bb6cca88e0459a347172c0fde8b48c3071219527249da0679a9d127f8" {
			// Empty salt is technically well-formed; it must still only
			// verify for the matching plaintext.
			if v.Verify("password123", stored) {
				t.Errorf("empty-salt hash verified for wrong construction")
			}
			continue
		}
		if v.Verify("password123", stored) {
			t.Errorf("malformed stored value %q verified", stored)
		}
	}
}

func TestLegacyHash_Format(t *testing.T) {
	h := LegacyHash("a1b2c3d4", "password123")
	want := "a1b2c3d4:282f1c5bb6cca88e0459a347172c0fde8b48c3071219527249da0679a9d127f8"
	if h != want {
		t.Fatalf("LegacyHash mismatch:\n got  %s\n want %s", h, want)
	}
}

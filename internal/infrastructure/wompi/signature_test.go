package wompi

import (
	"strings"
	"testing"
)

func TestComputeChecksum_Deterministic(t *testing.T) {
	first := ComputeChecksum("wp-tx-1", "APPROVED", 5000000, 1700000000, "secret")
	second := ComputeChecksum("wp-tx-1", "APPROVED", 5000000, 1700000000, "secret")

	if first != second {
		t.Error("identical inputs must produce identical digests")
	}
	if len(first) != 64 {
		t.Errorf("expected a 64-char hex digest, got %d chars", len(first))
	}
	if first != strings.ToLower(first) {
		t.Error("digest must be lowercase hex")
	}
}

func TestVerifyChecksum_RoundTrip(t *testing.T) {
	checksum := ComputeChecksum("wp-tx-1", "APPROVED", 5000000, 1700000000, "secret")

	if !VerifyChecksum("wp-tx-1", "APPROVED", 5000000, 1700000000, "secret", checksum) {
		t.Error("recomputed digest must match the supplied checksum")
	}

	// The processor sends uppercase hex; comparison is case-insensitive.
	if !VerifyChecksum("wp-tx-1", "APPROVED", 5000000, 1700000000, "secret", strings.ToUpper(checksum)) {
		t.Error("uppercase checksum must verify")
	}
}

func TestVerifyChecksum_AnyFieldMutationInvalidates(t *testing.T) {
	checksum := ComputeChecksum("wp-tx-1", "APPROVED", 5000000, 1700000000, "secret")

	cases := []struct {
		name  string
		valid bool
	}{
		{"id", VerifyChecksum("wp-tx-2", "APPROVED", 5000000, 1700000000, "secret", checksum)},
		{"status", VerifyChecksum("wp-tx-1", "DECLINED", 5000000, 1700000000, "secret", checksum)},
		{"amount", VerifyChecksum("wp-tx-1", "APPROVED", 5000001, 1700000000, "secret", checksum)},
		{"timestamp", VerifyChecksum("wp-tx-1", "APPROVED", 5000000, 1700000001, "secret", checksum)},
		{"secret", VerifyChecksum("wp-tx-1", "APPROVED", 5000000, 1700000000, "secre7", checksum)},
	}

	for _, tc := range cases {
		if tc.valid {
			t.Errorf("mutated %s must invalidate the checksum", tc.name)
		}
	}

	mutated := "0" + checksum[1:]
	if mutated == checksum {
		mutated = "1" + checksum[1:]
	}
	if VerifyChecksum("wp-tx-1", "APPROVED", 5000000, 1700000000, "secret", mutated) {
		t.Error("a single-character checksum mutation must invalidate")
	}
}

func TestVerifyChecksum_FailsClosed(t *testing.T) {
	// Unset secret: even a digest honestly computed over the empty secret
	// must be rejected.
	checksum := ComputeChecksum("wp-tx-1", "APPROVED", 5000000, 1700000000, "")
	if VerifyChecksum("wp-tx-1", "APPROVED", 5000000, 1700000000, "", checksum) {
		t.Error("verification must fail closed with an empty secret")
	}

	if VerifyChecksum("wp-tx-1", "APPROVED", 5000000, 1700000000, "secret", "") {
		t.Error("an empty checksum must never verify")
	}
}

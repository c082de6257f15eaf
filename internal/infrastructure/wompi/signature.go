package wompi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// ComputeChecksum builds the event integrity digest the processor documents:
// transaction id, status, amount in minor units and the event timestamp are
// concatenated with the events secret, in that exact order with no
// delimiters, and hashed with SHA-256. Any change in field order or units on
// the processor side breaks verification; that contract lives outside this
// service.
func ComputeChecksum(transactionID, status string, amountInMinorUnits, timestamp int64, secret string) string {
	payload := fmt.Sprintf("%s%s%d%d%s", transactionID, status, amountInMinorUnits, timestamp, secret)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum compares the supplied checksum against a recomputed digest
// in constant time. A missing secret fails closed: the webhook endpoint is
// otherwise unauthenticated, so verification must never pass by accident.
func VerifyChecksum(transactionID, status string, amountInMinorUnits, timestamp int64, secret, checksum string) bool {
	if secret == "" || checksum == "" {
		return false
	}
	expected := ComputeChecksum(transactionID, status, amountInMinorUnits, timestamp, secret)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(checksum)))
}

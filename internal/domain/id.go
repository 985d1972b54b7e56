package domain

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"sync/atomic"
	"time"
)

// IDLength is the length of a store reference: 24 hexadecimal characters
// encoding 12 bytes (4-byte timestamp, 5-byte process entropy, 3-byte
// counter). References are opaque to clients; only their shape is part of
// the public contract.
const IDLength = 24

var (
	idEntropy [5]byte
	idCounter uint32
)

func init() {
	if _, err := rand.Read(idEntropy[:]); err != nil {
		// Fall back to time-derived entropy rather than a static value.
		binary.BigEndian.PutUint32(idEntropy[:4], uint32(time.Now().UnixNano()))
		idEntropy[4] = byte(time.Now().Nanosecond())
	}
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err == nil {
		idCounter = binary.BigEndian.Uint32(seed[:])
	}
}

// NewID generates a new 24-character hex store reference. IDs generated
// within one process are unique; IDs across processes collide only if
// the 5 entropy bytes collide within the same second.
func NewID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(time.Now().Unix()))
	copy(b[4:9], idEntropy[:])
	c := atomic.AddUint32(&idCounter, 1)
	b[9] = byte(c >> 16)
	b[10] = byte(c >> 8)
	b[11] = byte(c)
	return hex.EncodeToString(b[:])
}

// IsValidID reports whether s has the shape of a store reference.
func IsValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// ParseID validates s as a store reference and returns its canonical
// lowercase form. Returns an error wrapping ErrInvalidID on malformed
// input.
func ParseID(s string) (string, error) {
	if !IsValidID(s) {
		return "", NewValidationError("id", "must be a 24-character hex string", ErrInvalidID)
	}
	return strings.ToLower(s), nil
}

package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for trace ids and other client-minted
// tokens. It prefers UUIDv7 so generated ids sort by creation time, which
// keeps log correlation readable.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7 string, falling back to a random UUIDv4
// when the system clock cannot supply monotonic randomness.
func (g *UUIDGenerator) Generate() string {
	if v7, err := uuid.NewV7(); err == nil {
		return v7.String()
	}
	return uuid.NewString()
}

package utils

import (
	"crypto/rand"
	"fmt"
)

// PNR alphabet: uppercase letters and digits without the easily-confused
// 0/O and 1/I pairs.
const referenceAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const referenceLength = 6

// NewBookingReference generates a fresh 6-character booking reference.
func NewBookingReference() string {
	buf := make([]byte, referenceLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; keep the signature
		// simple and fall back to a fixed marker if it somehow does.
		return "ZZZZZZ"
	}
	out := make([]byte, referenceLength)
	for i, b := range buf {
		out[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return string(out)
}

// FormatRoute renders an itinerary like "LHR-DOH-BKK" for logs and greetings.
func FormatRoute(origin, hub, destination string) string {
	if origin == "" || destination == "" {
		return ""
	}
	if hub == "" {
		return fmt.Sprintf("%s-%s", origin, destination)
	}
	return fmt.Sprintf("%s-%s-%s", origin, hub, destination)
}

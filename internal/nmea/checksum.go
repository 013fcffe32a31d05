package nmea

import (
	"fmt"
	"strings"
)

// Checksum returns the two-digit uppercase hex XOR of the sentence body.
//
// A leading '$' and anything from the last '*' onward are ignored, so
// "$GPGLL,...*77" and "GPGLL,..." give the same result.
func Checksum(sentence string) string {
	body := strings.TrimPrefix(sentence, "$")
	if star := strings.LastIndexByte(body, '*'); star != -1 {
		body = body[:star]
	}
	ck := byte(0)
	for i := 0; i < len(body); i++ {
		ck ^= body[i]
	}
	return fmt.Sprintf("%02X", ck)
}

// isChecksumToken reports whether tok is exactly two hex digits.
func isChecksumToken(tok string) bool {
	if len(tok) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		c := tok[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// HasChecksum reports whether the sentence carried a valid checksum token.
func (s *Sentence) HasChecksum() bool {
	return s != nil && s.hasChecksum
}

// VerifyChecksum compares the stored checksum token with the digest of the
// raw text. It returns ErrMissingChecksum when no token was captured; check
// HasChecksum first.
func (s *Sentence) VerifyChecksum() (bool, error) {
	if !s.HasChecksum() {
		return false, fmt.Errorf("nmea: verify %s: %w", s.SentenceType(), ErrMissingChecksum)
	}
	return strings.EqualFold(Checksum(s.raw), s.checksum), nil
}

// ChecksumStatus summarises a record's checksum for reporting.
type ChecksumStatus string

const (
	ChecksumOK      ChecksumStatus = "ok"
	ChecksumBad     ChecksumStatus = "bad"
	ChecksumMissing ChecksumStatus = "missing"
)

// StatusOf verifies rec's checksum when it has one.
func StatusOf(rec Record) ChecksumStatus {
	if rec == nil || !rec.HasChecksum() {
		return ChecksumMissing
	}
	if ok, err := rec.VerifyChecksum(); err != nil || !ok {
		return ChecksumBad
	}
	return ChecksumOK
}

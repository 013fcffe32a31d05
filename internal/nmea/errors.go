package nmea

import "errors"

var (
	// ErrContractViolation is returned when a sentence carries more data
	// fields than its layout can hold.
	ErrContractViolation = errors.New("contract violation")

	// ErrMissingChecksum is returned when verification is requested on a
	// record that did not capture a checksum token.
	ErrMissingChecksum = errors.New("missing checksum")

	// ErrUnknownDirection is returned for direction letters other than N/S/E/W.
	ErrUnknownDirection = errors.New("unknown direction")

	// ErrFieldUnset is returned by typed accessors when the sentence was too
	// short to populate the field, or the field was empty.
	ErrFieldUnset = errors.New("field unset")

	// ErrEmptySentence is returned when a sentence has no type code.
	ErrEmptySentence = errors.New("empty sentence")
)

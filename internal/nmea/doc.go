// Package nmea parses NMEA 0183 sentences into typed records.
//
// The pieces, leaves first:
//   - Checksum computes the XOR digest of a sentence body.
//   - Splitter frames a buffer into sentence bodies on the '$' marker.
//   - Layout/Sentence bind comma-split fields to named keys.
//   - Registry maps a sentence type code to its Layout.
//   - Stream pulls chunks from an io.Reader and yields sentences or records.
//
// Unknown sentence types parse as a generic record with no named fields.
package nmea

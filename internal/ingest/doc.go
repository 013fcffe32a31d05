// Package ingest runs an NMEA source through the framer and parser.
//
// It is best-effort: read errors and bad sentences are counted and kept in
// the snapshot, never fatal to the process.
// - Sources: file, stdin, tcp (with reconnect)
// - Each sentence: parse, checksum, metrics, sinks, recent tail
package ingest

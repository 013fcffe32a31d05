package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"nmeastream/internal/nmea"
)

type logSummary struct {
	Sentences          int
	TypeCounts         map[string]int
	ChecksumOK         int
	ChecksumBad        int
	ChecksumMissing    int
	ContractViolations int
	ParseErrors        int
	Dropped            map[nmea.DropReason]int
}

// summarizeNMEA reads r to EOF. Bad sentences are counted and skipped.
func summarizeNMEA(r io.Reader) (logSummary, error) {
	s := logSummary{TypeCounts: map[string]int{}, Dropped: map[nmea.DropReason]int{}}
	stream := nmea.NewStream(r, nmea.WithDropHook(func(_ string, reason nmea.DropReason) {
		s.Dropped[reason]++
	}))
	reg := nmea.DefaultRegistry()

	for {
		batch, err := stream.Read()
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			return s, err
		}
		for _, raw := range batch {
			rec, err := reg.Parse(raw)
			if err != nil {
				if errors.Is(err, nmea.ErrContractViolation) {
					s.ContractViolations++
				} else {
					s.ParseErrors++
				}
				continue
			}
			s.Sentences++
			s.TypeCounts[rec.SentenceType()]++
			switch nmea.StatusOf(rec) {
			case nmea.ChecksumOK:
				s.ChecksumOK++
			case nmea.ChecksumBad:
				s.ChecksumBad++
			default:
				s.ChecksumMissing++
			}
		}
	}
}

func printLogSummary(w io.Writer, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("path is empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := summarizeNMEA(f)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "path: %s\n", path)
	fmt.Fprintf(w, "sentences: %d\n", s.Sentences)
	fmt.Fprintf(w, "checksum_ok: %d\n", s.ChecksumOK)
	fmt.Fprintf(w, "checksum_bad: %d\n", s.ChecksumBad)
	fmt.Fprintf(w, "checksum_missing: %d\n", s.ChecksumMissing)
	fmt.Fprintf(w, "contract_violations: %d\n", s.ContractViolations)
	fmt.Fprintf(w, "parse_errors: %d\n", s.ParseErrors)

	reasons := make([]string, 0, len(s.Dropped))
	for k := range s.Dropped {
		reasons = append(reasons, string(k))
	}
	sort.Strings(reasons)
	fmt.Fprintf(w, "dropped:\n")
	for _, k := range reasons {
		fmt.Fprintf(w, "  %s: %d\n", k, s.Dropped[nmea.DropReason(k)])
	}

	types := make([]string, 0, len(s.TypeCounts))
	for k := range s.TypeCounts {
		types = append(types, k)
	}
	sort.Strings(types)
	fmt.Fprintf(w, "type_counts:\n")
	for _, k := range types {
		fmt.Fprintf(w, "  %s: %d\n", k, s.TypeCounts[k])
	}
	return nil
}

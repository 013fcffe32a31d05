package nmea

import (
	"strings"
	"unicode"
)

// DropReason says why the splitter discarded a candidate.
type DropReason string

const (
	// DropRunTogether marks a candidate holding more than one '*', usually two
	// sentences written without a '$' between them.
	DropRunTogether DropReason = "run_together"
	// DropUnframed marks text a Stream read before its first '$': the tail
	// of a sentence that began before reading started.
	DropUnframed DropReason = "unframed"
	// DropOversize marks a held fragment that grew past the stream's limit
	// without ever seeing a '$'.
	DropOversize DropReason = "oversize"
)

// Splitter frames a buffer into sentence bodies.
//
// Separator is for recorders that write something other than whitespace
// between sentences; without it there is no way to tell whether the tail of
// "$x,y,zSTUFF" is data. OnDrop, when set, sees every candidate the splitter
// discards. The zero value is ready to use.
type Splitter struct {
	Separator string
	OnDrop    func(candidate string, reason DropReason)
}

// Split returns the sentence bodies in buffer, in order, without the '$'.
//
// Every '$'-separated piece is a candidate, including text before the first
// '$', so "s1$s2$s3" yields s1, s2 and s3. Whitespace and the separator are
// trimmed from the end of each candidate.
// When the last field holds a checksum, anything past its two characters is
// cut. Candidates with more than one '*' are dropped, as are empty ones.
func (sp Splitter) Split(buffer string) []string {
	parts := strings.Split(buffer, "$")
	out := make([]string, 0, len(parts))
	for _, item := range parts {
		clean := sp.trim(item)
		lastField := clean[strings.LastIndexByte(clean, ',')+1:]
		if strings.IndexByte(lastField, '*') != -1 {
			if strings.Count(clean, "*") != 1 {
				sp.drop(clean, DropRunTogether)
				continue
			}
			star := strings.IndexByte(clean, '*')
			ck := clean[star+1:]
			if len(ck) > 2 {
				ck = ck[:2]
			}
			clean = clean[:star+1] + ck
		}
		if clean == "" {
			continue
		}
		out = append(out, clean)
	}
	return out
}

func (sp Splitter) trim(item string) string {
	item = strings.TrimRightFunc(item, unicode.IsSpace)
	if sp.Separator == "" {
		return item
	}
	for strings.HasSuffix(item, sp.Separator) {
		item = strings.TrimSuffix(item, sp.Separator)
		item = strings.TrimRightFunc(item, unicode.IsSpace)
	}
	return item
}

func (sp Splitter) drop(candidate string, reason DropReason) {
	if sp.OnDrop != nil {
		sp.OnDrop(candidate, reason)
	}
}

// Split frames buffer with a zero Splitter.
func Split(buffer string) []string {
	return Splitter{}.Split(buffer)
}

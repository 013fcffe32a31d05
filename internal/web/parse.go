package web

import (
	"errors"
	"io"
	"net/http"

	"nmeastream/internal/nmea"
)

// ParsedSentence is one entry of a POST /api/parse response.
type ParsedSentence struct {
	SentenceType   string       `json:"sentence_type,omitempty"`
	Description    string       `json:"description,omitempty"`
	RawText        string       `json:"raw_text"`
	Checksum       string       `json:"checksum,omitempty"`
	ChecksumStatus string       `json:"checksum_status,omitempty"`
	Fields         []nmea.Value `json:"fields,omitempty"`
	List           []string     `json:"list,omitempty"`
	Error          string       `json:"error,omitempty"`
}

type DroppedCandidate struct {
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

type ParseResponse struct {
	Sentences []ParsedSentence   `json:"sentences"`
	Dropped   []DroppedCandidate `json:"dropped,omitempty"`
}

func parseHandler(reg *nmea.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxParseBody))
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "read failed", http.StatusBadRequest)
			return
		}

		resp := ParseResponse{Sentences: []ParsedSentence{}}
		sp := nmea.Splitter{
			Separator: r.URL.Query().Get("separator"),
			OnDrop: func(candidate string, reason nmea.DropReason) {
				resp.Dropped = append(resp.Dropped, DroppedCandidate{Text: candidate, Reason: string(reason)})
			},
		}
		for _, raw := range sp.Split(string(body)) {
			resp.Sentences = append(resp.Sentences, describe(reg, raw))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// describe parses raw and flattens the result. Parse failures are reported
// in Error rather than failing the request.
func describe(reg *nmea.Registry, raw string) ParsedSentence {
	rec, err := reg.Parse(raw)
	if err != nil {
		return ParsedSentence{RawText: raw, Error: err.Error()}
	}
	out := ParsedSentence{
		SentenceType:   rec.SentenceType(),
		RawText:        rec.RawText(),
		ChecksumStatus: string(nmea.StatusOf(rec)),
		Fields:         rec.Fields(),
		List:           rec.List(),
	}
	if l := rec.Layout(); l != nil {
		out.Description = l.Description
	}
	if ck, ok := rec.Checksum(); ok {
		out.Checksum = ck
	}
	return out
}

package nmea

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		name string
		in   string
		sep  string
		want []string
	}{
		{
			name: "Newlines",
			in:   "$GPGLL,3751.65,S,14507.36,E*77\n$GPBOD,1,2,3,4,5,6\n",
			want: []string{"GPGLL,3751.65,S,14507.36,E*77", "GPBOD,1,2,3,4,5,6"},
		},
		{
			name: "CarriageReturns",
			in:   "$foo,bar,baz*77\r$Meep,wibble,123,321\r",
			want: []string{"foo,bar,baz*77", "Meep,wibble,123,321"},
		},
		{
			name: "CRLFNoFinalTerminator",
			in:   "$foo,bar,baz*77\r\n$Meep,wibble,123,321",
			want: []string{"foo,bar,baz*77", "Meep,wibble,123,321"},
		},
		{
			name: "CustomSeparator",
			in:   "$foo,bar,baz*77NOTHING$Meep,wibble,123,321NOTHING",
			sep:  "NOTHING",
			want: []string{"foo,bar,baz*77", "Meep,wibble,123,321"},
		},
		{
			name: "TrailingGarbageAfterChecksum",
			in:   "$GPGLL,3751.65,S,14507.36,E*77junk\n",
			want: []string{"GPGLL,3751.65,S,14507.36,E*77"},
		},
		{
			name: "RunTogetherDropped",
			in:   "$GPGLL,3751.65,S,14507.36,E*77GPGLL,3751.65,S,14507.36,E*77\n$GPHDT,274.07,T*03\n",
			want: []string{"GPHDT,274.07,T*03"},
		},
		{
			name: "EmptyCandidatesDropped",
			in:   "$$\n$ \r\n$GPHDT,274.07,T*03",
			want: []string{"GPHDT,274.07,T*03"},
		},
		{
			name: "TextBeforeFirstMarkerKept",
			in:   "GPGLL,3751.65,S,14507.36,E*77\n$GPBOD,1,2,3,4,5,6\n",
			want: []string{"GPGLL,3751.65,S,14507.36,E*77", "GPBOD,1,2,3,4,5,6"},
		},
		{
			name: "NoMarker",
			in:   "GPHDT,274.07,T*03\n",
			want: []string{"GPHDT,274.07,T*03"},
		},
		{
			name: "NonHexChecksumKept",
			in:   "$GPHDT,274.07,T*hh\n",
			want: []string{"GPHDT,274.07,T*hh"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Splitter{Separator: tc.sep}.Split(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Split() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplit_DropHook(t *testing.T) {
	var dropped []string
	var reasons []DropReason
	sp := Splitter{OnDrop: func(c string, r DropReason) {
		dropped = append(dropped, c)
		reasons = append(reasons, r)
	}}
	got := sp.Split("$A,1*11B,2*22\n$C,3\n")
	assert.Equal(t, []string{"C,3"}, got)
	assert.Equal(t, []string{"A,1*11B,2*22"}, dropped)
	assert.Equal(t, []DropReason{DropRunTogether}, reasons)
}

func TestSplit_RoundTrip(t *testing.T) {
	want := []string{
		"GPGLL,3751.65,S,14507.36,E*77",
		"GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A",
		"GPBOD,045.,T,023.,M,DEST,START",
		"PGRME,15.0,M,45.0,M,25.0,M*1C",
	}
	buf := ""
	for _, s := range want {
		buf += "$" + s + "\r\n"
	}
	if diff := cmp.Diff(want, Split(buf)); diff != "" {
		t.Fatalf("Split() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit_RoundTripWithoutLeadingMarker(t *testing.T) {
	want := []string{"GPHDT,274.07,T*03", "GPBOD,045.,T,023.,M,DEST,START", "GPXYZ,1,2,3*50"}
	if diff := cmp.Diff(want, Split(strings.Join(want, "$"))); diff != "" {
		t.Fatalf("Split() mismatch (-want +got):\n%s", diff)
	}
}

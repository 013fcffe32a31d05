package nmea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Idempotent(t *testing.T) {
	r := DefaultRegistry()
	a := r.Resolve("GPGLL")
	b := r.Resolve("GPGLL")
	assert.Same(t, a, b)
	assert.Equal(t, a.Fields.Keys(), b.Fields.Keys())
}

func TestResolve_TalkerNeutral(t *testing.T) {
	r := DefaultRegistry()
	assert.Same(t, r.Resolve("GPRMC"), r.Resolve("GNRMC"))
	assert.Same(t, r.Resolve("GPRMC"), r.Resolve("$GLRMC"))
	// Proprietary codes never fall back by suffix.
	assert.True(t, r.Resolve("PXRMC").Generic())
}

func TestParse_UnknownType(t *testing.T) {
	rec, err := Parse("$GPXYZ,1,2,3*50")
	require.NoError(t, err)
	assert.Equal(t, "GPXYZ", rec.SentenceType())
	assert.True(t, rec.Layout().Generic())
	assert.Empty(t, rec.Fields())
	assert.Equal(t, []string{"1", "2", "3"}, rec.List())
	_, isSentence := rec.(*Sentence)
	assert.True(t, isSentence)
}

func TestRegister_Validates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Layout{Code: "PFOO", Fields: fm("A", "a", "B", "b")}))

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(&Layout{Code: ""}))
	assert.Error(t, r.Register(&Layout{Code: "$PBAR"}))
	assert.Error(t, r.Register(&Layout{Code: "PFOO"}), "duplicate code")
	assert.Error(t, r.Register(&Layout{Code: "PBAZ", Fields: fm("A", "a", "A again", "a")}))
	assert.Error(t, r.Register(&Layout{Code: "PQUX", Fields: fm("A", "a"), List: &Field{Label: "A", Key: "a"}}))

	rec, err := r.Parse("$PFOO,1,2")
	require.NoError(t, err)
	v, ok := rec.Field("b")
	require.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestDefaultRegistry_BuiltinsValid(t *testing.T) {
	codes := DefaultRegistry().Codes()
	assert.Contains(t, codes, "GPGLL")
	assert.Contains(t, codes, "PGRME")
	assert.Len(t, codes, len(builtinLayouts()))
}

package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matryer/is"
)

func date(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func TestTemporalExtentOverlapsOnContainment(t *testing.T) {
	is := is.New(t)
	te := NewTemporalExtent(date("2020-01-01"), date("2020-06-01"))

	is.True(te.Overlaps(date("2020-03-01"), date("2020-04-01")))
}

func TestTemporalExtentDoesNotOverlapDisjointRange(t *testing.T) {
	is := is.New(t)
	te := NewTemporalExtent(date("2020-01-01"), date("2020-06-01"))

	is.True(!te.Overlaps(date("2021-01-01"), date("2021-02-01")))
}

func TestTemporalExtentOverlapsOnTouchingEndpoint(t *testing.T) {
	is := is.New(t)
	te := NewTemporalExtent(date("2020-01-01"), date("2020-06-01"))

	is.True(te.Overlaps(date("2020-06-01"), date("2020-12-31")))
}

func TestTemporalExtentMarshalsAsTwoElementArray(t *testing.T) {
	is := is.New(t)
	te := NewTemporalExtent(date("2020-01-01"), date("2020-06-01"))

	b, err := json.Marshal(te)
	is.NoErr(err)
	is.Equal(string(b), `["2020-01-01T00:00:00Z","2020-06-01T00:00:00Z"]`)

	roundtripped := TemporalExtent{}
	err = json.Unmarshal(b, &roundtripped)
	is.NoErr(err)
	is.Equal(roundtripped, te)
}

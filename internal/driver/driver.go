// Package driver runs an extraction against an ordered list of encodings,
// stopping at the first one that works.
package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mcncl/nextdata/internal/decode"
	"github.com/mcncl/nextdata/internal/errors"
	"github.com/mcncl/nextdata/internal/extractor"
)

// Attempter is satisfied by *extractor.Extractor
type Attempter interface {
	Attempt(encoding string) (*extractor.Result, error)
}

// Attempt records one encoding that was tried
type Attempt struct {
	Encoding string
	Err      error // nil for the successful attempt
}

// Outcome is the result of a whole run
type Outcome struct {
	Attempts []Attempt
	Result   *extractor.Result // nil when every encoding failed
}

// OK reports whether some encoding succeeded
func (o Outcome) OK() bool { return o.Result != nil }

// Encoding returns the encoding that succeeded, or ""
func (o Outcome) Encoding() string {
	if n := len(o.Attempts); n > 0 && o.Attempts[n-1].Err == nil {
		return o.Attempts[n-1].Encoding
	}
	return ""
}

// Driver walks the fallback chain
type Driver struct {
	Extractor Attempter
	Encodings []string
	Out       io.Writer // receives the failure line
	Logger    zerolog.Logger
}

// New returns a Driver using decode.DefaultOrder
func New(ex Attempter, out io.Writer) *Driver {
	return &Driver{
		Extractor: ex,
		Encodings: append([]string(nil), decode.DefaultOrder...),
		Out:       out,
		Logger:    zerolog.Nop(),
	}
}

// Run tries each encoding once, in order, until one succeeds.
// When all fail it writes FailureMessage to Out.
func (d *Driver) Run() (Outcome, error) {
	var outcome Outcome
	encodings := Dedupe(d.Encodings)

	for _, enc := range encodings {
		res, err := d.Extractor.Attempt(enc)
		outcome.Attempts = append(outcome.Attempts, Attempt{Encoding: enc, Err: err})
		if err == nil {
			outcome.Result = res
			d.Logger.Debug().Str("encoding", enc).Int("attempts", len(outcome.Attempts)).Msg("payload extracted")
			return outcome, nil
		}
	}

	d.Logger.Debug().Strs("encodings", encodings).Msg("all encodings failed")
	if d.Out != nil {
		if _, err := fmt.Fprintln(d.Out, FailureMessage(encodings)); err != nil {
			return outcome, errors.NewOutputError("failed to write failure message", err)
		}
	}
	return outcome, errors.ErrExhausted
}

// Dedupe drops encodings that resolve to one already listed, keeping the
// first spelling. Unknown names are kept as given so their attempt fails visibly.
func Dedupe(encodings []string) []string {
	seen := make(map[string]bool, len(encodings))
	out := make([]string, 0, len(encodings))
	for _, enc := range encodings {
		key, ok := decode.Normalize(enc)
		if !ok {
			key = "?" + enc
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, enc)
	}
	return out
}

// FailureMessage is the line printed when nothing could be extracted,
// e.g. "Failed to extract with utf-8, cp950, or latin-1"
func FailureMessage(encodings []string) string {
	var list string
	switch len(encodings) {
	case 0:
		list = "no encodings"
	case 1:
		list = encodings[0]
	case 2:
		list = encodings[0] + " or " + encodings[1]
	default:
		list = strings.Join(encodings[:len(encodings)-1], ", ") + ", or " + encodings[len(encodings)-1]
	}
	return "Failed to extract with " + list
}

// Package extractor pulls the __NEXT_DATA__ JSON payload out of a saved page
// and writes it, pretty-printed, to an output stream.
package extractor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mcncl/nextdata/internal/decode"
	"github.com/mcncl/nextdata/internal/errors"
	"github.com/mcncl/nextdata/internal/formatter"
	"github.com/mcncl/nextdata/internal/locate"
	"github.com/mcncl/nextdata/internal/models"
	"github.com/mcncl/nextdata/internal/parser"
)

// DefaultPath is the page read when no path is given
const DefaultPath = "revenue_page.html"

// Extractor reads one page and emits its embedded payload
type Extractor struct {
	Path      string
	Locator   locate.Locator
	Formatter *formatter.Formatter
	Out       io.Writer
	Logger    zerolog.Logger
}

// Result is a successful extraction
type Result struct {
	Payload models.Payload
	Output  []byte // exactly what was written, trailing newline included
}

// New creates an Extractor for path writing to out, using the regexp locator
// and two-space formatting. Logging is disabled until Logger is set.
func New(path string, out io.Writer) *Extractor {
	return &Extractor{
		Path:      path,
		Locator:   locate.Regexp{},
		Formatter: formatter.NewFormatter(),
		Out:       out,
		Logger:    zerolog.Nop(),
	}
}

// Extract makes one attempt with the named encoding and reports only whether it succeeded.
// The cause of a failure is logged at debug level and otherwise discarded.
func (e *Extractor) Extract(encoding string) bool {
	_, err := e.Attempt(encoding)
	return err == nil
}

// Attempt reads the page fresh, decodes it with encoding, locates and parses the
// payload and writes it to Out. Nothing is written unless every step succeeds.
// Errors are *errors.AppError values whose Type names the failing stage.
func (e *Extractor) Attempt(encoding string) (*Result, error) {
	log := e.Logger.With().Str("file", e.Path).Str("encoding", encoding).Logger()

	res, err := e.attempt(encoding)
	if err != nil {
		log.Debug().Err(err).Str("stage", string(errors.TypeOf(err))).Msg("extraction attempt failed")
		return nil, err
	}

	log.Debug().Int("bytes", len(res.Output)).Msg("extracted payload")
	return res, nil
}

func (e *Extractor) attempt(encoding string) (*Result, error) {
	enc, err := decode.Lookup(encoding)
	if err != nil {
		return nil, err
	}

	raw, err := readFile(e.Path)
	if err != nil {
		return nil, err
	}

	text, err := enc.Decode(raw)
	if err != nil {
		return nil, err
	}

	locator := e.Locator
	if locator == nil {
		locator = locate.Regexp{}
	}
	block, ok := locator.Find(text)
	if !ok {
		return nil, errors.NewLocateError(
			fmt.Sprintf("no __NEXT_DATA__ script block in '%s'", e.Path),
			errors.ErrNoPayload,
		)
	}

	payload, err := parser.ParseString(block)
	if err != nil {
		return nil, err
	}
	payload.Encoding = enc.Name
	payload.Source = e.Path

	f := e.Formatter
	if f == nil {
		f = formatter.NewFormatter()
	}
	rendered, err := f.Format(payload.Root)
	if err != nil {
		return nil, errors.NewOutputError("failed to render payload", err)
	}
	out := append(rendered, '\n')

	if e.Out != nil {
		if _, err := e.Out.Write(out); err != nil {
			return nil, errors.NewOutputError("failed to write payload", err)
		}
	}

	return &Result{Payload: payload, Output: out}, nil
}

// readFile loads the whole page; the handle is closed on every path
func readFile(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewReadError("file path is empty", errors.ErrInvalidFilePath)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewReadError(fmt.Sprintf("file '%s' not found", path), errors.ErrFileNotFound)
		}
		return nil, errors.NewReadError(fmt.Sprintf("failed to open file '%s'", path), err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewReadError(fmt.Sprintf("failed to read file '%s'", path), err)
	}
	return data, nil
}

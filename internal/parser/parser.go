package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/nextdata/internal/errors" // Custom errors package
	"github.com/mcncl/nextdata/internal/models"
)

// Parse converts JSON data from an io.Reader into a Payload.
// Object members keep their document order, a repeated key keeps its first
// position and its last value. Numbers are rewritten the way a float64
// round trip prints them, and NaN, Infinity and -Infinity are accepted.
func Parse(reader io.Reader) (models.Payload, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Payload{}, errors.NewParsingError("failed to read JSON input", err)
	}

	text, nonFinite := rewriteNonFinite(string(data))
	tr := &tokenReader{
		decoder:   json.NewDecoder(strings.NewReader(text)),
		nonFinite: nonFinite,
	}
	tr.decoder.UseNumber()

	rootValue, err := tr.decodeValue(false)
	if err != nil {
		return models.Payload{}, classify(err)
	}

	// Anything but EOF after the root value means extra data
	tok, err := tr.decoder.Token()
	switch {
	case err == nil:
		return models.Payload{}, errors.NewParsingError(
			fmt.Sprintf("unexpected %v after first JSON value", tok),
			errors.ErrMultipleJSON,
		)
	case !stderrors.Is(err, io.EOF):
		return models.Payload{}, errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
	}

	_, isArray := rootValue.(models.JSONArray)
	return models.Payload{
		Root:        rootValue,
		RootIsArray: isArray,
	}, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Payload, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Payload{}, errors.NewParsingError("payload is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// classify maps decoder failures onto parsing errors
func classify(err error) error {
	if stderrors.Is(err, io.EOF) {
		return errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// tokenReader walks the decoder's token stream.
// nonFinite maps the end offset of each placeholder written by
// rewriteNonFinite to the literal it replaced.
type tokenReader struct {
	decoder   *json.Decoder
	nonFinite map[int64]models.NonFinite
}

// decodeValue reads one complete value from the token stream.
// EOF inside a container is reported as io.ErrUnexpectedEOF.
func (r *tokenReader) decodeValue(nested bool) (models.JSONValue, error) {
	tok, err := r.decoder.Token()
	if err != nil {
		if nested && stderrors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch v := tok.(type) {
	case json.Number:
		if lit, ok := r.nonFinite[r.decoder.InputOffset()]; ok {
			return lit, nil
		}
		return canonicalNumber(v), nil
	case json.Delim:
		return r.decodeContainer(v)
	default:
		return tok, nil // string, bool or nil
	}
}

func (r *tokenReader) decodeContainer(delim json.Delim) (models.JSONValue, error) {
	switch delim {
	case '{':
		obj := models.JSONObject{}
		index := map[string]int{}
		for r.decoder.More() {
			keyTok, err := r.decoder.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
			}
			value, err := r.decodeValue(true)
			if err != nil {
				return nil, err
			}
			if i, seen := index[key]; seen {
				obj[i].Value = value
				continue
			}
			index[key] = len(obj)
			obj = append(obj, models.Member{Key: key, Value: value})
		}
		return obj, r.closeDelim('}')
	case '[':
		arr := models.JSONArray{}
		for r.decoder.More() {
			value, err := r.decodeValue(true)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		return arr, r.closeDelim(']')
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", rune(delim))
	}
}

func (r *tokenReader) closeDelim(want json.Delim) error {
	tok, err := r.decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if tok != want {
		return fmt.Errorf("expected %q, got %v", rune(want), tok)
	}
	return nil
}

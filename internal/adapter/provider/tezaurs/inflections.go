package tezaurs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
	"github.com/heartmarshall/tezaurs-gateway/internal/provider"
)

// DecodeInflections decodes an inflect_phrase response: a JSON object mapping
// case labels to the phrase rendered in that case.
//
// The result holds at most one entry per case, in arbitrary order: it is
// stable in content, not in position, and callers must not rely on ordering.
// An unknown case label, a non-string sentence or a repeated case fails the
// whole decode; no case is ever dropped silently.
//
// The body is read token by token: unmarshalling into a Go map keeps only
// the last of duplicate keys.
func DecodeInflections(raw []byte) ([]domain.Inflection, error) {
	if err := checkWellFormed(raw); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, provider.NewMalformedPayloadError(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, provider.NewDecodeError(rootField, snippet(raw), "expected a JSON object of case labels")
	}

	seen := make(map[domain.Case]string, len(domain.AllCases))
	out := make([]domain.Inflection, 0, len(domain.AllCases))

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, provider.NewMalformedPayloadError(err)
		}
		label, ok := keyTok.(string)
		if !ok {
			return nil, provider.NewMalformedPayloadError(fmt.Errorf("unexpected token %v", keyTok))
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, provider.NewMalformedPayloadError(err)
		}

		c, err := caseLabels.variant(label)
		if err != nil {
			var pe *provider.Error
			if errors.As(err, &pe) {
				pe.Field = label
			}
			return nil, err
		}
		if prev, dup := seen[c]; dup {
			return nil, provider.NewDecodeError(label, quote(label),
				fmt.Sprintf("duplicate case %s (already given as %q)", c, prev))
		}
		seen[c] = label

		var sentence string
		if err := json.Unmarshal(value, &sentence); err != nil || isNull(value) {
			return nil, provider.NewDecodeError(label, string(value), "expected a string")
		}

		out = append(out, domain.Inflection{Case: c, Sentence: sentence})
	}

	return out, nil
}

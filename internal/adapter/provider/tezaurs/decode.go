package tezaurs

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
	"github.com/heartmarshall/tezaurs-gateway/internal/provider"
)

// rootField names the whole payload in decode errors about its shape.
const rootField = "$"

// record is one JSON object of a list response, keyed by contract key.
type record map[string]json.RawMessage

// presence says whether a missing or unparseable field aborts the record.
type presence int

const (
	required presence = iota
	optional
)

// DecodeAnalyses decodes an analyze response into analyses.
func DecodeAnalyses(raw []byte) ([]domain.AnalyzedWord, error) {
	return decodeList(raw, decodeAnalyzedWord)
}

// DecodeTokens decodes a tokenize response into tokens, in sentence order.
func DecodeTokens(raw []byte) ([]domain.Token, error) {
	return decodeList(raw, decodeToken)
}

// DecodeParadigms decodes a suitable_paradigm response.
func DecodeParadigms(raw []byte) ([]domain.Paradigm, error) {
	return decodeList(raw, decodeParadigm)
}

// decodeList decodes a JSON array of records. Elements are decoded
// independently; the first failing element fails the whole list.
func decodeList[T any](raw []byte, decodeItem func(record) (T, error)) ([]T, error) {
	if err := checkWellFormed(raw); err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, provider.NewDecodeError(rootField, snippet(raw), "expected a JSON array")
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		var rec record
		if err := json.Unmarshal(item, &rec); err != nil || rec == nil {
			return nil, atElement(provider.NewDecodeError("", snippet(item), "expected a JSON object"), i)
		}
		v, err := decodeItem(rec)
		if err != nil {
			return nil, atElement(err, i)
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeAnalyzedWord(r record) (domain.AnalyzedWord, error) {
	var (
		w   domain.AnalyzedWord
		err error
	)

	if w.Number, err = enumField(r, keyNumber, numberLabels); err != nil {
		return w, err
	}
	if w.EntryID, err = r.digits(keyEntryID, optional); err != nil {
		return w, err
	}
	if w.Word, err = r.str(keyWord); err != nil {
		return w, err
	}
	w.HumanEntryID = r.optStr(keyHumanEntryID)
	if w.Lexeme, err = r.requiredDigits(keyLexeme); err != nil {
		return w, err
	}
	w.FreeText = r.optStr(keyFreeText)
	if w.Ending, err = r.requiredDigits(keyEnding); err != nil {
		return w, err
	}
	w.Source = r.optStr(keySource)
	if w.PartOfSpeech, err = enumField(r, keyPartOfSpeech, posLabels); err != nil {
		return w, err
	}
	if w.Swap, err = r.requiredDigits(keySwap); err != nil {
		return w, err
	}
	if w.Mention, err = r.str(keyMention); err != nil {
		return w, err
	}
	if w.BasicForm, err = r.str(keyBasicForm); err != nil {
		return w, err
	}
	if w.Case, err = enumField(r, keyCase, caseLabels); err != nil {
		return w, err
	}
	if w.Gender, err = enumField(r, keyGender, genderLabels); err != nil {
		return w, err
	}
	if w.Group, err = r.requiredDigits(keyGroup); err != nil {
		return w, err
	}
	if w.Declension, err = r.requiredDigits(keyDeclension); err != nil {
		return w, err
	}
	return w, nil
}

func decodeToken(r record) (domain.Token, error) {
	var (
		t   domain.Token
		err error
	)
	if t.Word, err = r.str(keyWord); err != nil {
		return t, err
	}
	if t.Tag, err = r.str(keyTag); err != nil {
		return t, err
	}
	if t.BaseForm, err = r.str(keyBasicForm); err != nil {
		return t, err
	}
	return t, nil
}

func decodeParadigm(r record) (domain.Paradigm, error) {
	var (
		p   domain.Paradigm
		err error
	)
	if p.ID, err = r.id(keyParadigmID); err != nil {
		return p, err
	}
	if p.Description, err = r.str(keyParadigmDescription); err != nil {
		return p, err
	}
	return p, nil
}

// str extracts a required string field.
func (r record) str(key string) (string, error) {
	raw, ok := r[key]
	if !ok {
		return "", missing(key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || isNull(raw) {
		return "", provider.NewDecodeError(key, string(raw), "expected a string")
	}
	return s, nil
}

// optStr extracts an optional string field. Absent, null and non-string
// values all resolve to nil.
func (r record) optStr(key string) *string {
	raw, ok := r[key]
	if !ok || isNull(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func (r record) requiredDigits(key string) (uint64, error) {
	n, err := r.digits(key, required)
	if err != nil {
		return 0, err
	}
	return *n, nil
}

// digits coerces a string-encoded non-negative integer. Under the optional
// policy any failure yields nil; only this field is affected.
func (r record) digits(key string, p presence) (*uint64, error) {
	n, err := coerceDigits(key, r[key])
	if err != nil {
		if p == optional {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// id extracts a numeric identifier sent either as a JSON integer or as a
// string of digits.
func (r record) id(key string) (uint64, error) {
	raw, ok := r[key]
	if !ok {
		return 0, missing(key)
	}
	if len(raw) > 0 && raw[0] == '"' {
		return coerceDigits(key, raw)
	}
	n, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, provider.NewDecodeError(key, string(raw), "expected a non-negative integer")
	}
	return n, nil
}

// coerceDigits is the single string-to-integer coercion step shared by every
// numeric field. raw == nil means the key was absent.
func coerceDigits(key string, raw json.RawMessage) (uint64, error) {
	if raw == nil {
		return 0, missing(key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || isNull(raw) {
		return 0, provider.NewDecodeError(key, string(raw), "expected a string of decimal digits")
	}
	if !allDigits(s) {
		return 0, provider.NewDecodeError(key, quote(s), "not a non-negative integer")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, provider.NewDecodeError(key, quote(s), "integer out of range")
	}
	return n, nil
}

// enumField extracts a label and resolves it through the domain's table.
func enumField[T ~string](r record, key string, t labelTable[T]) (T, error) {
	label, err := r.str(key)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := t.variant(label)
	if err != nil {
		var pe *provider.Error
		if errors.As(err, &pe) {
			pe.Field = key
		}
		return v, err
	}
	return v, nil
}

// checkWellFormed rejects bodies that are not a single well-formed JSON value.
func checkWellFormed(raw []byte) error {
	if json.Valid(raw) {
		return nil
	}
	var v any
	err := json.Unmarshal(raw, &v)
	if err == nil {
		err = errors.New("invalid JSON")
	}
	return provider.NewMalformedPayloadError(err)
}

func atElement(err error, i int) error {
	var pe *provider.Error
	if errors.As(err, &pe) {
		pe.Element = &i
	}
	return err
}

func missing(key string) *provider.Error {
	return provider.NewDecodeError(key, "", "missing required field")
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func quote(s string) string { return strconv.Quote(s) }

// snippet returns the start of a raw value for error context.
func snippet(raw []byte) string {
	const maxLen = 64
	raw = bytes.TrimSpace(raw)
	if len(raw) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		return string(raw[:cut]) + "…"
	}
	return string(raw)
}

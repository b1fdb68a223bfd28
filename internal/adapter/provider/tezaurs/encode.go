package tezaurs

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
)

// The encoders below produce the service's wire format from domain values.
// They are the inverse of the decoders and are used to build fixtures and a
// stand-in service.

// EncodeAnalyses renders analyses as an analyze response body.
func EncodeAnalyses(words []domain.AnalyzedWord) ([]byte, error) {
	out := make([]map[string]any, 0, len(words))
	for i, w := range words {
		rec, err := encodeAnalyzedWord(w)
		if err != nil {
			return nil, fmt.Errorf("encode analysis %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return json.Marshal(out)
}

// EncodeTokens renders tokens as a tokenize response body.
func EncodeTokens(tokens []domain.Token) ([]byte, error) {
	out := make([]map[string]any, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, map[string]any{
			keyWord:      t.Word,
			keyTag:       t.Tag,
			keyBasicForm: t.BaseForm,
		})
	}
	return json.Marshal(out)
}

// EncodeParadigms renders paradigms as a suitable_paradigm response body.
func EncodeParadigms(paradigms []domain.Paradigm) ([]byte, error) {
	out := make([]map[string]any, 0, len(paradigms))
	for _, p := range paradigms {
		out = append(out, map[string]any{
			keyParadigmID:          p.ID,
			keyParadigmDescription: p.Description,
		})
	}
	return json.Marshal(out)
}

// EncodeInflections renders inflections as an inflect_phrase response body.
func EncodeInflections(inflections []domain.Inflection) ([]byte, error) {
	out := make(map[string]string, len(inflections))
	for _, inf := range inflections {
		label, ok := CaseLabel(inf.Case)
		if !ok {
			return nil, fmt.Errorf("encode inflection: no label for case %q", inf.Case)
		}
		if _, dup := out[label]; dup {
			return nil, fmt.Errorf("encode inflection: duplicate case %q", inf.Case)
		}
		out[label] = inf.Sentence
	}
	return json.Marshal(out)
}

func encodeAnalyzedWord(w domain.AnalyzedWord) (map[string]any, error) {
	number, ok := NumberLabel(w.Number)
	if !ok {
		return nil, fmt.Errorf("no label for number %q", w.Number)
	}
	pos, ok := PartOfSpeechLabel(w.PartOfSpeech)
	if !ok {
		return nil, fmt.Errorf("no label for part of speech %q", w.PartOfSpeech)
	}
	c, ok := CaseLabel(w.Case)
	if !ok {
		return nil, fmt.Errorf("no label for case %q", w.Case)
	}
	gender, ok := GenderLabel(w.Gender)
	if !ok {
		return nil, fmt.Errorf("no label for gender %q", w.Gender)
	}

	rec := map[string]any{
		keyNumber:       number,
		keyWord:         w.Word,
		keyLexeme:       formatUint(w.Lexeme),
		keyEnding:       formatUint(w.Ending),
		keyPartOfSpeech: pos,
		keySwap:         formatUint(w.Swap),
		keyMention:      w.Mention,
		keyBasicForm:    w.BasicForm,
		keyCase:         c,
		keyGender:       gender,
		keyGroup:        formatUint(w.Group),
		keyDeclension:   formatUint(w.Declension),
	}
	if w.EntryID != nil {
		rec[keyEntryID] = formatUint(*w.EntryID)
	}
	if w.HumanEntryID != nil {
		rec[keyHumanEntryID] = *w.HumanEntryID
	}
	if w.FreeText != nil {
		rec[keyFreeText] = *w.FreeText
	}
	if w.Source != nil {
		rec[keySource] = *w.Source
	}
	return rec, nil
}

func formatUint(n uint64) string { return strconv.FormatUint(n, 10) }

package tezaurs

import (
	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
	"github.com/heartmarshall/tezaurs-gateway/internal/provider"
)

// LabelDomain names one of the closed label sets the service uses.
type LabelDomain string

const (
	DomainCase         LabelDomain = "case"
	DomainGender       LabelDomain = "gender"
	DomainNumber       LabelDomain = "number"
	DomainPartOfSpeech LabelDomain = "part_of_speech"
)

// labelTable is a fixed bidirectional mapping between the service's Latvian
// labels and domain variants. Tables are built once at init and never mutated.
type labelTable[T ~string] struct {
	domain  LabelDomain
	byLabel map[string]T
	byValue map[T]string
}

func newLabelTable[T ~string](d LabelDomain, pairs map[string]T) labelTable[T] {
	t := labelTable[T]{
		domain:  d,
		byLabel: pairs,
		byValue: make(map[T]string, len(pairs)),
	}
	for label, v := range pairs {
		t.byValue[v] = label
	}
	return t
}

func (t labelTable[T]) variant(label string) (T, error) {
	v, ok := t.byLabel[label]
	if !ok {
		var zero T
		return zero, unknownLabel(t.domain, label)
	}
	return v, nil
}

func (t labelTable[T]) label(v T) (string, bool) {
	l, ok := t.byValue[v]
	return l, ok
}

var (
	numberLabels = newLabelTable(DomainNumber, map[string]domain.Number{
		"Vienskaitlis":  domain.NumberSingular,
		"Daudzskaitlis": domain.NumberPlural,
	})

	genderLabels = newLabelTable(DomainGender, map[string]domain.Gender{
		"Sieviešu": domain.GenderFemale,
		"Vīriešu":  domain.GenderMale,
	})

	posLabels = newLabelTable(DomainPartOfSpeech, map[string]domain.PartOfSpeech{
		"Lietvārds":      domain.PartOfSpeechNoun,
		"Īpašības vārds": domain.PartOfSpeechAdjective,
		"Skaitļa vārds":  domain.PartOfSpeechNumeral,
		"Darbības vārds": domain.PartOfSpeechVerb,
	})

	caseLabels = newLabelTable(DomainCase, map[string]domain.Case{
		"Nominatīvs":     domain.CaseNominative,
		"Ģenitīvs":       domain.CaseGenitive,
		"Datīvs":         domain.CaseDative,
		"Akuzatīvs":      domain.CaseAccusative,
		"Instrumentālis": domain.CaseInstrumental,
		"Lokatīvs":       domain.CaseLocative,
		"Vokatīvs":       domain.CaseVocative,
	})
)

// Translate resolves a service label within the given domain. The returned
// value is one of domain.Number, domain.Gender, domain.PartOfSpeech or
// domain.Case. Labels outside the domain's table yield a decode error matching
// provider.ErrUnknownLabel; there is no default variant.
func Translate(label string, d LabelDomain) (any, error) {
	switch d {
	case DomainNumber:
		return ParseNumber(label)
	case DomainGender:
		return ParseGender(label)
	case DomainPartOfSpeech:
		return ParsePartOfSpeech(label)
	case DomainCase:
		return ParseCase(label)
	}
	return nil, unknownLabel(d, label)
}

func unknownLabel(d LabelDomain, label string) *provider.Error {
	e := provider.NewDecodeError(string(d), quote(label), "label outside the "+string(d)+" table")
	e.Err = provider.ErrUnknownLabel
	return e
}

// ParseNumber resolves a grammatical number label, e.g. "Vienskaitlis".
func ParseNumber(label string) (domain.Number, error) { return numberLabels.variant(label) }

// ParseGender resolves a gender label, e.g. "Sieviešu".
func ParseGender(label string) (domain.Gender, error) { return genderLabels.variant(label) }

// ParsePartOfSpeech resolves a word-class label, e.g. "Lietvārds".
func ParsePartOfSpeech(label string) (domain.PartOfSpeech, error) { return posLabels.variant(label) }

// ParseCase resolves a case label, e.g. "Ģenitīvs".
func ParseCase(label string) (domain.Case, error) { return caseLabels.variant(label) }

// NumberLabel returns the service label for n.
func NumberLabel(n domain.Number) (string, bool) { return numberLabels.label(n) }

// GenderLabel returns the service label for g.
func GenderLabel(g domain.Gender) (string, bool) { return genderLabels.label(g) }

// PartOfSpeechLabel returns the service label for p.
func PartOfSpeechLabel(p domain.PartOfSpeech) (string, bool) { return posLabels.label(p) }

// CaseLabel returns the service label for c.
func CaseLabel(c domain.Case) (string, bool) { return caseLabels.label(c) }

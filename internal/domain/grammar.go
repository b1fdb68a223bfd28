package domain

// Number is the grammatical number of a word form.
type Number string

const (
	NumberSingular Number = "SINGULAR"
	NumberPlural   Number = "PLURAL"
)

func (n Number) String() string { return string(n) }

func (n Number) IsValid() bool {
	switch n {
	case NumberSingular, NumberPlural:
		return true
	}
	return false
}

// Gender is the grammatical gender of a word form.
type Gender string

const (
	GenderFemale Gender = "FEMALE"
	GenderMale   Gender = "MALE"
)

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	switch g {
	case GenderFemale, GenderMale:
		return true
	}
	return false
}

// PartOfSpeech is the word class reported by the morphological analyser.
type PartOfSpeech string

const (
	PartOfSpeechNoun      PartOfSpeech = "NOUN"
	PartOfSpeechAdjective PartOfSpeech = "ADJECTIVE"
	PartOfSpeechNumeral   PartOfSpeech = "NUMERAL"
	PartOfSpeechVerb      PartOfSpeech = "VERB"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechAdjective, PartOfSpeechNumeral, PartOfSpeechVerb:
		return true
	}
	return false
}

// Case is a grammatical case. Latvian has seven.
type Case string

const (
	CaseNominative   Case = "NOMINATIVE"
	CaseGenitive     Case = "GENITIVE"
	CaseDative       Case = "DATIVE"
	CaseAccusative   Case = "ACCUSATIVE"
	CaseInstrumental Case = "INSTRUMENTAL"
	CaseLocative     Case = "LOCATIVE"
	CaseVocative     Case = "VOCATIVE"
)

// AllCases lists every case in traditional grammar order.
var AllCases = []Case{
	CaseNominative, CaseGenitive, CaseDative, CaseAccusative,
	CaseInstrumental, CaseLocative, CaseVocative,
}

func (c Case) String() string { return string(c) }

func (c Case) IsValid() bool {
	switch c {
	case CaseNominative, CaseGenitive, CaseDative, CaseAccusative,
		CaseInstrumental, CaseLocative, CaseVocative:
		return true
	}
	return false
}

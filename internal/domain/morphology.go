package domain

// AnalyzedWord is one morphological analysis of a word occurrence.
// A single surface form usually has several analyses (homonyms, different lexemes).
type AnalyzedWord struct {
	Number       Number       `json:"number"`
	EntryID      *uint64      `json:"entry_id,omitempty"`
	Word         string       `json:"word"`
	HumanEntryID *string      `json:"human_entry_id,omitempty"`
	Lexeme       uint64       `json:"lexeme"`
	FreeText     *string      `json:"free_text,omitempty"`
	Ending       uint64       `json:"ending"`
	Source       *string      `json:"source,omitempty"`
	PartOfSpeech PartOfSpeech `json:"part_of_speech"`
	Swap         uint64       `json:"swap"`
	Mention      string       `json:"mention"`
	BasicForm    string       `json:"basic_form"`
	Case         Case         `json:"case"`
	Gender       Gender       `json:"gender"`
	Group        uint64       `json:"group"`
	Declension   uint64       `json:"declension"`
}

// Token is one tokenized unit of a sentence.
type Token struct {
	Word     string `json:"word"`
	Tag      string `json:"tag"`
	BaseForm string `json:"base_form"`
}

// Paradigm is an inflection paradigm the service considers suitable for a word.
type Paradigm struct {
	ID          uint64 `json:"id"`
	Description string `json:"description"`
}

// Inflection is a phrase rendered in one grammatical case.
type Inflection struct {
	Case     Case   `json:"case"`
	Sentence string `json:"sentence"`
}

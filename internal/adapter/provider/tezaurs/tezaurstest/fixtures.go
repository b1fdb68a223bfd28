package tezaurstest

import "github.com/heartmarshall/tezaurs-gateway/internal/domain"

// JuraAnalyses are the two analyses the live service gives for "jūra":
// the genitive of the name "Jūris" and the noun "jūra" (sea).
func JuraAnalyses() []domain.AnalyzedWord {
	return []domain.AnalyzedWord{
		{
			Number:       domain.NumberSingular,
			Word:         "jūra",
			Lexeme:       1033983,
			Ending:       28,
			Source:       ptr("VVC paplašinātais vārdadienu saraksts 2014-10-31"),
			PartOfSpeech: domain.PartOfSpeechNoun,
			Swap:         1,
			Mention:      "Nav",
			BasicForm:    "Jūris",
			Case:         domain.CaseGenitive,
			Gender:       domain.GenderMale,
			Group:        3,
			Declension:   2,
		},
		{
			Number:       domain.NumberSingular,
			EntryID:      ptr[uint64](134187),
			Word:         "jūra",
			HumanEntryID: ptr("jūra:1"),
			Lexeme:       138064,
			Ending:       75,
			PartOfSpeech: domain.PartOfSpeechNoun,
			Swap:         0,
			Mention:      "Nav",
			BasicForm:    "jūra",
			Case:         domain.CaseNominative,
			Gender:       domain.GenderFemale,
			Group:        7,
			Declension:   4,
		},
	}
}

// EsDomajuTokens is the tokenization of "es domāju".
func EsDomajuTokens() []domain.Token {
	return []domain.Token{
		{Word: "es", Tag: "pp10snn", BaseForm: "es"},
		{Word: "domāju", Tag: "vmnip_21san", BaseForm: "domāt"},
	}
}

// InstitutePhrase is a dative phrase used for normalization and inflection.
const InstitutePhrase = "Latvijas Universitātes Matemātikas un Informātikas Institūtam"

// InstituteInflections are the five case forms the service returns for InstitutePhrase.
func InstituteInflections() []domain.Inflection {
	const stem = "Latvijas Universitātes Matemātikas un Informātikas "
	return []domain.Inflection{
		{Case: domain.CaseAccusative, Sentence: stem + "Institūtu"},
		{Case: domain.CaseDative, Sentence: stem + "Institūtam"},
		{Case: domain.CaseLocative, Sentence: stem + "Institūtā"},
		{Case: domain.CaseNominative, Sentence: stem + "Institūts"},
		{Case: domain.CaseGenitive, Sentence: stem + "Institūta"},
	}
}

// PokemonizatorsParadigms are the paradigms suggested for the made-up "pokemonizators".
func PokemonizatorsParadigms() []domain.Paradigm {
	return []domain.Paradigm{
		{ID: 1, Description: "noun-1a"},
		{ID: 13, Description: "adj-1"},
		{ID: 39, Description: "foreign"},
	}
}

func ptr[T any](v T) *T { return &v }

package tezaurs

// Contract keys of the service's JSON records. The service labels fields in
// Latvian; keys are matched verbatim and case-sensitively.
const (
	keyNumber       = "Skaitlis"
	keyEntryID      = "Šķirkļa ID"
	keyWord         = "Vārds"
	keyHumanEntryID = "Šķirkļa cilvēklasāmais ID"
	keyLexeme       = "Leksēmas nr"
	keyFreeText     = "FreeText"
	keyEnding       = "Galotnes nr"
	keySource       = "Avots"
	keyPartOfSpeech = "Vārdšķira"
	keySwap         = "Mija"
	keyMention      = "Minēšana"
	keyBasicForm    = "Pamatforma"
	keyCase         = "Locījums"
	keyGender       = "Dzimte"
	keyGroup        = "Vārdgrupas nr"
	keyDeclension   = "Deklinācija"

	keyTag = "Marķējums"

	keyParadigmID          = "ID"
	keyParadigmDescription = "Description"
)

// apiErrorBody is the envelope the service wraps errors in.
// Both the documented and the short key spellings are accepted.
type apiErrorBody struct {
	Error *apiError `json:"error"`
}

type apiError struct {
	ErrorCode     *int              `json:"error_code"`
	Code          *int              `json:"code"`
	ErrorMsg      *string           `json:"error_msg"`
	Message       *string           `json:"message"`
	RequestParams []apiRequestParam `json:"request_params"`
}

type apiRequestParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

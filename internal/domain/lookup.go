package domain

import (
	"time"

	"github.com/google/uuid"
)

// Operation names a morphology service call.
type Operation string

const (
	OperationAnalyze   Operation = "ANALYZE"
	OperationTokenize  Operation = "TOKENIZE"
	OperationNormalize Operation = "NORMALIZE"
	OperationParadigm  Operation = "PARADIGM"
	OperationInflect   Operation = "INFLECT"
)

func (o Operation) String() string { return string(o) }

func (o Operation) IsValid() bool {
	switch o {
	case OperationAnalyze, OperationTokenize, OperationNormalize, OperationParadigm, OperationInflect:
		return true
	}
	return false
}

// LookupOutcome classifies how a lookup ended.
type LookupOutcome string

const (
	LookupOutcomeOK        LookupOutcome = "OK"
	LookupOutcomeTransport LookupOutcome = "TRANSPORT"
	LookupOutcomeMalformed LookupOutcome = "MALFORMED"
	LookupOutcomeDecode    LookupOutcome = "DECODE"
)

func (o LookupOutcome) String() string { return string(o) }

func (o LookupOutcome) IsValid() bool {
	switch o {
	case LookupOutcomeOK, LookupOutcomeTransport, LookupOutcomeMalformed, LookupOutcomeDecode:
		return true
	}
	return false
}

// Lookup is a journal record of one call to the morphology service.
type Lookup struct {
	ID          uuid.UUID
	Operation   Operation
	Query       string
	Outcome     LookupOutcome
	ResultCount int
	// ErrorDetail is empty for successful lookups.
	ErrorDetail string
	RequestID   string
	// Client is the authenticated caller, empty when auth is disabled.
	Client      string
	Duration    time.Duration
	CreatedAt   time.Time
}

// OutcomeCount is the number of lookups with a given outcome.
type OutcomeCount struct {
	Outcome LookupOutcome
	Count   int
}

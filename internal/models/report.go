package models

// Report is an ordered analytical result set. A failed query yields an
// empty Rows with Headers intact, so the UI can always render something.
type Report struct {
	Headers []string
	Rows    [][]string
}

// OutcomeKind classifies a service-level failure.
type OutcomeKind string

const (
	OutcomeOK           OutcomeKind = "ok"
	OutcomeInvalid      OutcomeKind = "invalid"
	OutcomeDuplicate    OutcomeKind = "duplicate"
	OutcomeNotFound     OutcomeKind = "not_found"
	OutcomeUnauthorized OutcomeKind = "unauthorized"
	OutcomeInternal     OutcomeKind = "internal"
)

// Outcome is the result of a user-facing write operation. Services
// return these instead of raw errors; the Message is safe to display.
type Outcome struct {
	OK      bool
	Kind    OutcomeKind
	Message string
}

func Success(message string) Outcome {
	return Outcome{OK: true, Kind: OutcomeOK, Message: message}
}

func Failure(kind OutcomeKind, message string) Outcome {
	return Outcome{OK: false, Kind: kind, Message: message}
}

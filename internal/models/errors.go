package models

// RecoverableError is implemented by enriched errors that carry structured
// context and remediation hints. Both the store and output packages use this
// interface to avoid an import cycle.
type RecoverableError interface {
	error
	ErrorCode() string
	Context() map[string]string
	SuggestedAction() string
}

// ValidationError reports a DailyScrum field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string     { return e.Field + " " + e.Reason }
func (e *ValidationError) ErrorCode() string { return "INVALID_SCRUM" }
func (e *ValidationError) Context() map[string]string {
	return map[string]string{"field": e.Field}
}
func (e *ValidationError) SuggestedAction() string {
	return "fix " + e.Field + " and retry"
}

package store

import (
	"fmt"

	"github.com/dotcommander/scrumdinger/internal/models"
)

// Diagnostic represents a single consistency check finding.
type Diagnostic struct {
	Level           string `json:"level"` // "warning" or "error"
	Code            string `json:"code"`
	ScrumID         string `json:"scrum_id,omitempty"`
	Message         string `json:"message"`
	SuggestedAction string `json:"suggested_action,omitempty"`
}

// RunDiagnostics performs consistency checks over loaded scrums and, when
// schema is non-nil, the database's migration state as it was before opening.
func RunDiagnostics(scrums []models.DailyScrum, schema *SchemaStatus) []Diagnostic {
	diags := findInvalidScrums(scrums)
	diags = append(diags, findDuplicateIDs(scrums)...)
	if schema != nil {
		diags = append(diags, findSchemaDrift(*schema)...)
	}
	return diags
}

// findInvalidScrums reports scrums that would be rejected if edited as stored.
func findInvalidScrums(scrums []models.DailyScrum) []Diagnostic {
	var diags []Diagnostic
	for _, s := range scrums {
		if err := s.Validate(); err != nil {
			diags = append(diags, Diagnostic{
				Level:           "warning",
				Code:            "INVALID_SCRUM",
				ScrumID:         s.ID,
				Message:         err.Error(),
				SuggestedAction: "scrumdinger scrum edit --id " + s.ID,
			})
		}
	}
	return diags
}

// findDuplicateIDs reports scrum IDs that appear more than once. Edits by ID
// only ever reach the first of them.
func findDuplicateIDs(scrums []models.DailyScrum) []Diagnostic {
	var diags []Diagnostic
	seen := make(map[string]bool, len(scrums))
	for _, s := range scrums {
		if seen[s.ID] {
			diags = append(diags, Diagnostic{
				Level:   "error",
				Code:    "DUPLICATE_SCRUM_ID",
				ScrumID: s.ID,
				Message: fmt.Sprintf("scrum id %s is used more than once", s.ID),
			})
			continue
		}
		seen[s.ID] = true
	}
	return diags
}

func findSchemaDrift(schema SchemaStatus) []Diagnostic {
	if !schema.Behind() {
		return nil
	}
	return []Diagnostic{{
		Level:           "warning",
		Code:            "SCHEMA_BEHIND",
		Message:         fmt.Sprintf("schema version %d, latest is %d", schema.Current, schema.Latest),
		SuggestedAction: "run any scrumdinger command against this database to migrate it",
	}}
}

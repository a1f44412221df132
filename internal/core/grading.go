package core

import (
	"fmt"
	"strings"
)

// GradeReport is the structured result of the AI grading collaborator.
// The jsonschema_description tags drive the strict output schema sent to the
// model.
type GradeReport struct {
	Moisture   string `json:"moisture" jsonschema_description:"Estimated moisture content as a percentage string, e.g. '12.5%'"`
	Impurities string `json:"impurities" jsonschema_description:"Estimated impurity level as a percentage string, e.g. '1.2%'"`
	Size       string `json:"size" jsonschema_description:"Grain or produce size assessment, e.g. 'Uniform, medium'"`
	Color      string `json:"color" jsonschema_description:"Color assessment, e.g. 'Golden, consistent'"`
	Grade      Grade  `json:"grade" jsonschema_description:"Overall quality grade: exactly one of 'Premium', 'Standard', 'Basic'"`
}

// Normalize trims whitespace and canonicalizes the grade's casing so that
// model output like 'premium' still maps onto the enumerated grades.
func (r *GradeReport) Normalize() {
	r.Moisture = strings.TrimSpace(r.Moisture)
	r.Impurities = strings.TrimSpace(r.Impurities)
	r.Size = strings.TrimSpace(r.Size)
	r.Color = strings.TrimSpace(r.Color)

	switch strings.ToLower(strings.TrimSpace(string(r.Grade))) {
	case "premium":
		r.Grade = GradePremium
	case "standard":
		r.Grade = GradeStandard
	case "basic":
		r.Grade = GradeBasic
	}
}

// Validate rejects reports whose grade is outside the enumerated set.
func (r *GradeReport) Validate() error {
	switch r.Grade {
	case GradePremium, GradeStandard, GradeBasic:
		return nil
	}
	return fmt.Errorf("grade must be Premium, Standard, or Basic, got %q", r.Grade)
}

// ConflictReport is the structured result of the AI conflict-detection
// collaborator. When ConflictDetected is true the transport event is withheld
// and the report surfaces to the user instead of being persisted.
type ConflictReport struct {
	ConflictDetected  bool   `json:"conflict_detected" jsonschema_description:"True if the proposed transport record contradicts the lot's existing details"`
	ConflictDetails   string `json:"conflict_details,omitempty" jsonschema_description:"Plain-language description of the contradiction, empty when no conflict"`
	ResolutionOptions string `json:"resolution_options,omitempty" jsonschema_description:"Suggested ways the operator could resolve the conflict, empty when no conflict"`
}

package assemble

import "github.com/election-directory/app/models"

// Outcome statuses as published in the results data.
const (
	StatusWin  = "win"
	StatusLose = "lose"
)

// ResolveStatus returns a row's outcome. An explicit status from the source
// document always wins. Without one, the outcome is derived from the
// candidate's vote rank against the constituency's seat count. When either
// number is missing the outcome stays indeterminate and the caller renders a
// placeholder instead of guessing.
func ResolveStatus(explicit *string, orderInUnit, seatCount *int) string {
	if explicit != nil && *explicit != "" {
		return *explicit
	}
	if orderInUnit == nil || seatCount == nil {
		return ""
	}
	if *orderInUnit <= *seatCount {
		return StatusWin
	}
	return StatusLose
}

// EffectiveStatus applies annotations on top of the resolved status. The last
// annotation in publication order is the one in force.
func EffectiveStatus(resolved string, annotations []models.ResultAnnotation) string {
	for i := len(annotations) - 1; i >= 0; i-- {
		if annotations[i].Status != "" {
			return annotations[i].Status
		}
	}
	return resolved
}

// Package permissions holds the pure authorization predicates for the API.
// Each predicate is a function of the request identity and the target object
// only; side effects, persistence and transport live elsewhere.
package permissions

import (
	"cohort/internal/models"
)

// Operation classifies an access for ownership checks.
type Operation int

const (
	// OpRead covers safe accesses that never require ownership.
	OpRead Operation = iota
	// OpWrite covers accesses that mutate the target.
	OpWrite
)

// IsOwnerOrReadOnly allows any read, and writes only from the survey's creator.
func IsOwnerOrReadOnly(op Operation, userID uint, survey *models.Survey) bool {
	if op == OpRead {
		return true
	}
	if survey == nil {
		return false
	}
	return survey.CreatedByID == userID
}

// IsResearcher reports whether the user is authenticated with the researcher
// role. A nil user or a user without a profile evaluates to false rather
// than panicking.
func IsResearcher(user *models.User) bool {
	if user == nil || user.Profile == nil {
		return false
	}
	return user.Profile.Role == models.RoleResearcher
}

package services

import (
	"github.com/Giridhar-07/civitrack-app/internal/auth"
	"github.com/Giridhar-07/civitrack-app/internal/models"
)

// CanMutate reports whether the principal may modify the issue: either it
// is the original reporter or it carries the admin role. Pure predicate;
// every mutating operation checks it before touching rows.
func CanMutate(issue *models.Issue, p auth.Principal) bool {
	return issue.ReporterID == p.ID || p.IsAdmin()
}

// Package directory defines the user-directory capability the breach
// subsystem consumes. User and family identity live in the surrounding
// system; this package only names the lookups the subsystem needs.
package directory

import "context"

// UserRef identifies a user for recipient resolution and delivery. Emergency
// numbers are the fallback recipient set for users without a family.
type UserRef struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Phone            string   `json:"phone"`
	EmergencyNumbers []string `json:"emergency_numbers,omitempty"`
}

// FamilyRef identifies a family (circle) a user belongs to.
type FamilyRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Directory is the external user-directory collaborator. Implementations own
// their timeout and retry policy.
type Directory interface {
	FindByID(ctx context.Context, userID string) (UserRef, error)
	FamiliesOf(ctx context.Context, userID string) ([]FamilyRef, error)
	MembersOf(ctx context.Context, familyID string) ([]UserRef, error)
	FindByPhoneNumbers(ctx context.Context, numbers []string) ([]UserRef, error)
}

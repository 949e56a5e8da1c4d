package domain

// Family is a group of at most two users (one AYAH, one IBU) sharing
// visibility into each other's financial records. Members is derived by
// querying users whose family_id matches; it is never persisted on the
// family row.
type Family struct {
	FamilyID string `json:"familyID" db:"family_id"`
	Name     string `json:"name" db:"name"`
	AuditFields
}

// FamilyWithMembers pairs a family row with its live-queried member list.
type FamilyWithMembers struct {
	Family  Family `json:"family"`
	Members []User `json:"members"`
}

// MemberWithRole returns the member holding the given role, or nil.
func (f *FamilyWithMembers) MemberWithRole(role FamilyRole) *User {
	for i := range f.Members {
		if f.Members[i].Role == role {
			return &f.Members[i]
		}
	}
	return nil
}

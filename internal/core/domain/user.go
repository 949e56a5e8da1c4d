package domain

import "time"

// FamilyRole is the household role of a user. A family holds at most one
// member per role.
type FamilyRole string

const (
	RoleAyah FamilyRole = "AYAH" // father; additionally gains access to the business ledger
	RoleIbu  FamilyRole = "IBU"  // mother
)

// IsValid reports whether the role is one of the two known roles.
func (r FamilyRole) IsValid() bool {
	return r == RoleAyah || r == RoleIbu
}

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an application user. FamilyID is a weak reference: null
// exactly when the user belongs to no family. Family membership lives only
// here; families never store a member list.
type User struct {
	UserID         string       `json:"userID"`
	Email          string       `json:"email"`
	Name           string       `json:"name"`
	Role           FamilyRole   `json:"role"`
	FamilyID       *string      `json:"familyID,omitempty"`
	PasswordHash   *string      `json:"-"` // nil for provider-provisioned users
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID *string      `json:"-"`
	AuditFields
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	DeletedAt              *time.Time `json:"deletedAt,omitempty"`
}

// InFamily reports whether the user currently belongs to a family.
func (u *User) InFamily() bool {
	return u.FamilyID != nil && *u.FamilyID != ""
}

// Profile is a resolved user enriched with their family (members included)
// when they have one. Family stays nil for solo users and when family
// enrichment degraded (resolution never fails on enrichment alone).
type Profile struct {
	User   User               `json:"user"`
	Family *FamilyWithMembers `json:"family,omitempty"`
}

// IdentityMetadata is what the identity provider knows about a user; used as
// defaults when provisioning a profile on first sign-in.
type IdentityMetadata struct {
	Email string
	Name  string
	Role  FamilyRole // zero value means unspecified; provisioning defaults to IBU
}

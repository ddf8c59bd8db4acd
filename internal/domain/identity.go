package domain

// Identity is the opaque key for a directory entry. It is immutable for the
// lifetime of an evaluator instance; all facts are derived from it.
type Identity struct {
	// DN locates the entry in the directory.
	DN string
	// ProfileID names the directory profile the entry was found under.
	ProfileID string
}

// String returns a short display form used in logs.
func (i Identity) String() string {
	if i.ProfileID == "" {
		return i.DN
	}
	return i.DN + " (" + i.ProfileID + ")"
}

// IsZero reports whether the identity is unset.
func (i Identity) IsZero() bool {
	return i.DN == ""
}

// ProfileCategory groups configured profiles by feature. Each authenticated
// category is resolved to at most one profile instance per identity.
type ProfileCategory string

const (
	ProfileCategoryPasswordPolicy   ProfileCategory = "password-policy"
	ProfileCategoryChallenge        ProfileCategory = "challenge"
	ProfileCategoryUpdateAttributes ProfileCategory = "update-attributes"
	ProfileCategoryHelpdesk         ProfileCategory = "helpdesk"
)

// AuthenticatedCategories lists the categories resolved during profile
// discovery. Order is insignificant; there are no cross-category dependencies.
func AuthenticatedCategories() []ProfileCategory {
	return []ProfileCategory{
		ProfileCategoryPasswordPolicy,
		ProfileCategoryChallenge,
		ProfileCategoryUpdateAttributes,
		ProfileCategoryHelpdesk,
	}
}

// TimestampKind names the directory-held timestamps the evaluator can read.
type TimestampKind string

const (
	TimestampLastLogin          TimestampKind = "last-login"
	TimestampAccountExpiration  TimestampKind = "account-expiration"
	TimestampPasswordExpiration TimestampKind = "password-expiration"
	TimestampPasswordModified   TimestampKind = "password-modified"
)

package domain

// FormFieldType names the validation applied to a form field value.
type FormFieldType string

const (
	FormFieldText   FormFieldType = "text"
	FormFieldEmail  FormFieldType = "email"
	FormFieldNumber FormFieldType = "number"
)

// FormField is one declared field of a profile-update form. The attribute
// names the backing directory attribute; validation rules come from the
// field declaration itself.
type FormField struct {
	Name      string        `json:"name"`
	Attribute string        `json:"attribute"`
	Label     string        `json:"label,omitempty"`
	Type      FormFieldType `json:"type"`
	Required  bool          `json:"required,omitempty"`
	MinLength int           `json:"min_length,omitempty"`
	MaxLength int           `json:"max_length,omitempty"`
	Pattern   string        `json:"pattern,omitempty"`
}

// UpdateProfile is the resolved profile-update configuration for an identity:
// whether setup is forced and which fields the form declares.
type UpdateProfile struct {
	ID         string
	ForceSetup bool
	Form       []FormField
}

// IsZero reports whether no update profile matched.
func (p UpdateProfile) IsZero() bool {
	return p.ID == ""
}

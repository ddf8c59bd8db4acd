package domain

// PermissionRuleType selects how a permission rule is evaluated.
type PermissionRuleType string

const (
	// PermissionMatchAttribute matches when a directory attribute equals a value.
	PermissionMatchAttribute PermissionRuleType = "attribute-match"
	// PermissionMatchBase matches when the identity DN falls under a base DN.
	PermissionMatchBase PermissionRuleType = "base-match"
	// PermissionMatchAll matches every identity.
	PermissionMatchAll PermissionRuleType = "match-all"
)

// PermissionRule is one rule of a permission rule set. An identity matches a
// rule set when it matches any rule in it; an empty rule set matches nothing.
type PermissionRule struct {
	Type      PermissionRuleType `json:"type"`
	Attribute string             `json:"attribute,omitempty"`
	Value     string             `json:"value,omitempty"`
	BaseDN    string             `json:"base_dn,omitempty"`
}

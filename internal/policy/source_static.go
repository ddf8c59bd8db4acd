package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"credstate/internal/domain"
	"credstate/internal/userinfo/ports"
	"credstate/pkg/platform/sentinel"
)

// Value is one typed setting value. Only the field matching the requested
// reader is consulted; the zero value answers every reader with its zero.
type Value struct {
	Bool       bool                    `json:"bool,omitempty"`
	Seconds    int64                   `json:"seconds,omitempty"`
	String     string                  `json:"string,omitempty"`
	List       []string                `json:"list,omitempty"`
	Permission []domain.PermissionRule `json:"permission,omitempty"`
}

// PasswordProfile is one configured password policy profile: the rule set it
// defines and the permission rules selecting which identities it applies to.
type PasswordProfile struct {
	Rules domain.RuleSet          `json:"rules"`
	Match []domain.PermissionRule `json:"match"`
}

// ChallengeProfileConfig is one configured challenge profile.
type ChallengeProfileConfig struct {
	DisplayName  string                  `json:"display_name"`
	ChallengeSet domain.ChallengeSet     `json:"challenge_set"`
	Match        []domain.PermissionRule `json:"match"`
}

// UpdateProfileConfig is one configured update-attributes profile.
type UpdateProfileConfig struct {
	ForceSetup bool                    `json:"force_setup"`
	Form       []domain.FormField      `json:"form"`
	Match      []domain.PermissionRule `json:"match"`
}

// Document is the full policy document backing a StaticSource.
type Document struct {
	// Settings holds global setting values.
	Settings map[ports.Setting]Value `json:"settings"`
	// ProfileSettings holds per-directory-profile setting values; lookups in
	// a profile scope fall back to the global table.
	ProfileSettings map[string]map[ports.Setting]Value `json:"profile_settings"`

	PasswordProfiles map[string]PasswordProfile         `json:"password_profiles"`
	ChallengeProfiles map[string]ChallengeProfileConfig `json:"challenge_profiles"`
	UpdateProfiles   map[string]UpdateProfileConfig     `json:"update_profiles"`

	// ProfileOrder fixes the evaluation order of profile matching per
	// category; first match wins.
	ProfileOrder map[domain.ProfileCategory][]string `json:"profile_order"`
}

// StaticSource is a read-only PolicySource over a policy document. Lookups
// never fail on absence; typed readers return zero values for unconfigured
// settings.
type StaticSource struct {
	doc Document
}

// NewStaticSource wraps a policy document.
func NewStaticSource(doc Document) *StaticSource {
	return &StaticSource{doc: doc}
}

// LoadDocument reads a policy document from a JSON file.
func LoadDocument(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read policy document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("parse policy document: %w", err)
	}
	return doc, nil
}

func (s *StaticSource) lookup(setting ports.Setting, scope ports.Scope) (Value, bool) {
	if scope.ProfileID != "" {
		if profile, ok := s.doc.ProfileSettings[scope.ProfileID]; ok {
			if v, ok := profile[setting]; ok {
				return v, true
			}
		}
	}
	v, ok := s.doc.Settings[setting]
	return v, ok
}

func (s *StaticSource) Bool(_ context.Context, setting ports.Setting, scope ports.Scope) (bool, error) {
	v, _ := s.lookup(setting, scope)
	return v.Bool, nil
}

func (s *StaticSource) Seconds(_ context.Context, setting ports.Setting, scope ports.Scope) (int64, error) {
	v, _ := s.lookup(setting, scope)
	return v.Seconds, nil
}

func (s *StaticSource) String(_ context.Context, setting ports.Setting, scope ports.Scope) (string, error) {
	v, _ := s.lookup(setting, scope)
	return v.String, nil
}

func (s *StaticSource) StringList(_ context.Context, setting ports.Setting, scope ports.Scope) ([]string, error) {
	v, _ := s.lookup(setting, scope)
	return v.List, nil
}

func (s *StaticSource) Permission(_ context.Context, setting ports.Setting, scope ports.Scope) ([]domain.PermissionRule, error) {
	v, _ := s.lookup(setting, scope)
	return v.Permission, nil
}

func (s *StaticSource) PasswordRules(_ context.Context, profileID string) (domain.RuleSet, error) {
	profile, ok := s.doc.PasswordProfiles[profileID]
	if !ok {
		return nil, fmt.Errorf("password profile %q: %w", profileID, sentinel.ErrNotFound)
	}
	return profile.Rules, nil
}

func (s *StaticSource) UpdateProfile(_ context.Context, profileID string) (domain.UpdateProfile, error) {
	profile, ok := s.doc.UpdateProfiles[profileID]
	if !ok {
		return domain.UpdateProfile{}, fmt.Errorf("update profile %q: %w", profileID, sentinel.ErrNotFound)
	}
	return domain.UpdateProfile{
		ID:         profileID,
		ForceSetup: profile.ForceSetup,
		Form:       profile.Form,
	}, nil
}

// ChallengeProfile returns a configured challenge profile by ID.
func (s *StaticSource) ChallengeProfile(profileID string) (ChallengeProfileConfig, bool) {
	cfg, ok := s.doc.ChallengeProfiles[profileID]
	return cfg, ok
}

// categoryProfiles returns the candidate profile IDs for a category in
// evaluation order, together with their match rules.
func (s *StaticSource) categoryProfiles(category domain.ProfileCategory) []candidateProfile {
	ids := s.doc.ProfileOrder[category]
	var out []candidateProfile
	for _, id := range ids {
		switch category {
		case domain.ProfileCategoryPasswordPolicy:
			if p, ok := s.doc.PasswordProfiles[id]; ok {
				out = append(out, candidateProfile{ID: id, Match: p.Match})
			}
		case domain.ProfileCategoryChallenge:
			if p, ok := s.doc.ChallengeProfiles[id]; ok {
				out = append(out, candidateProfile{ID: id, Match: p.Match})
			}
		case domain.ProfileCategoryUpdateAttributes:
			if p, ok := s.doc.UpdateProfiles[id]; ok {
				out = append(out, candidateProfile{ID: id, Match: p.Match})
			}
		}
	}
	return out
}

type candidateProfile struct {
	ID    string
	Match []domain.PermissionRule
}

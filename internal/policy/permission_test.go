package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"credstate/internal/directory"
	"credstate/internal/domain"
)

type PermissionSuite struct {
	suite.Suite
	checker *DirectoryPermissionChecker
}

func TestPermissionSuite(t *testing.T) {
	suite.Run(t, new(PermissionSuite))
}

func (s *PermissionSuite) SetupTest() {
	dir := directory.NewMemory()
	dir.AddEntry("cn=alice,ou=people,dc=example,dc=org", map[string]string{"department": "Engineering"})

	var err error
	s.checker, err = NewDirectoryPermissionChecker(dir)
	s.Require().NoError(err)
}

func (s *PermissionSuite) identity() domain.Identity {
	return domain.Identity{DN: "cn=alice,ou=people,dc=example,dc=org"}
}

func (s *PermissionSuite) TestEmptyRuleSetMatchesNothing() {
	matched, err := s.checker.Match(context.Background(), s.identity(), nil)
	s.Require().NoError(err)
	s.False(matched)
}

func (s *PermissionSuite) TestMatchAll() {
	matched, err := s.checker.Match(context.Background(), s.identity(),
		[]domain.PermissionRule{{Type: domain.PermissionMatchAll}})
	s.Require().NoError(err)
	s.True(matched)
}

func (s *PermissionSuite) TestBaseMatch() {
	tests := []struct {
		name string
		base string
		want bool
	}{
		{"direct parent", "ou=people,dc=example,dc=org", true},
		{"root base", "dc=example,dc=org", true},
		{"case and spacing insensitive", "OU=People, DC=Example, DC=Org", true},
		{"sibling branch", "ou=staff,dc=example,dc=org", false},
		{"empty base", "", false},
		{"suffix of a component is not a match", "people,dc=example,dc=org", false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			matched, err := s.checker.Match(context.Background(), s.identity(),
				[]domain.PermissionRule{{Type: domain.PermissionMatchBase, BaseDN: tt.base}})
			s.Require().NoError(err)
			s.Equal(tt.want, matched)
		})
	}
}

func (s *PermissionSuite) TestAttributeMatch() {
	ctx := context.Background()

	matched, err := s.checker.Match(ctx, s.identity(), []domain.PermissionRule{
		{Type: domain.PermissionMatchAttribute, Attribute: "department", Value: "engineering"},
	})
	s.Require().NoError(err)
	s.True(matched, "attribute comparison is case-insensitive")

	matched, err = s.checker.Match(ctx, s.identity(), []domain.PermissionRule{
		{Type: domain.PermissionMatchAttribute, Attribute: "department", Value: "Sales"},
	})
	s.Require().NoError(err)
	s.False(matched)

	matched, err = s.checker.Match(ctx, s.identity(), []domain.PermissionRule{
		{Type: domain.PermissionMatchAttribute, Attribute: "missing", Value: "anything"},
	})
	s.Require().NoError(err)
	s.False(matched, "absent attribute never matches")
}

func (s *PermissionSuite) TestAnyRuleMatching() {
	matched, err := s.checker.Match(context.Background(), s.identity(), []domain.PermissionRule{
		{Type: domain.PermissionMatchAttribute, Attribute: "department", Value: "Sales"},
		{Type: domain.PermissionMatchBase, BaseDN: "dc=example,dc=org"},
	})
	s.Require().NoError(err)
	s.True(matched)
}

func (s *PermissionSuite) TestUnknownRuleTypeIsAnError() {
	_, err := s.checker.Match(context.Background(), s.identity(),
		[]domain.PermissionRule{{Type: "regex-match"}})
	s.Error(err)
}

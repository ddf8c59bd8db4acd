package httptransport

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"credstate/internal/directory"
	"credstate/internal/domain"
	"credstate/internal/form"
	"credstate/internal/guid"
	"credstate/internal/jwtauth"
	"credstate/internal/passwordrules"
	"credstate/internal/policy"
	"credstate/internal/userinfo"
	"credstate/internal/userinfo/ports"
)

const testDN = "cn=alice,ou=people,dc=example,dc=org"

type HandlerSuite struct {
	suite.Suite

	dir    *directory.MemoryDirectory
	tokens *jwtauth.Service
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.dir = directory.NewMemory()
	s.dir.AddEntry(testDN, map[string]string{
		"uid":  "alice",
		"mail": "alice@example.org",
	})
	s.dir.SetTimestamp(testDN, domain.TimestampPasswordExpiration, time.Now().Add(30*24*time.Hour))

	source := policy.NewStaticSource(policy.Document{
		Settings: map[ports.Setting]policy.Value{
			ports.SettingUsernameAttribute: {String: "uid"},
			ports.SettingEmailAttribute:    {String: "mail"},
			ports.SettingGUIDAttribute:     {String: "entryUUID"},
		},
		PasswordProfiles: map[string]policy.PasswordProfile{
			"default": {
				Rules: domain.RuleSet{domain.RuleMinimumLength: "8"},
				Match: []domain.PermissionRule{{Type: domain.PermissionMatchAll}},
			},
		},
		ProfileOrder: map[domain.ProfileCategory][]string{
			domain.ProfileCategoryPasswordPolicy: {"default"},
		},
	})

	checker, err := policy.NewDirectoryPermissionChecker(s.dir)
	s.Require().NoError(err)
	matcher, err := policy.NewMatcher(source, checker)
	s.Require().NoError(err)

	s.tokens, err = jwtauth.New("test-signing-key", "credstate", "credstate-clients")
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(
		userinfo.Ports{
			Directory:   s.dir,
			Policy:      source,
			Permissions: checker,
			Profiles:    matcher,
			Passwords:   passwordrules.NewValidator(),
			Forms:       form.NewValidator(),
			GUIDs:       guid.NewGenerator(),
		},
		logger,
		nil, // fact metrics optional
		nil, // http metrics exercised via nil-safe observe
		jwtauth.NewMiddlewareAdapter(s.tokens),
		nil, // audit disabled
		nil, // rate limiting disabled
	)

	s.router = chi.NewRouter()
	handler.Register(s.router)
}

func (s *HandlerSuite) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) token() string {
	token, err := s.tokens.GenerateToken(testDN, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *HandlerSuite) statusPath() string {
	return "/v1/identities/" + url.PathEscape(testDN) + "/status"
}

func (s *HandlerSuite) TestStatusRequiresAuth() {
	w := s.get(s.statusPath(), "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerSuite) TestStatusRejectsGarbageToken() {
	w := s.get(s.statusPath(), "not-a-token")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerSuite) TestStatusHappyPath() {
	w := s.get(s.statusPath(), s.token())
	s.Equal(http.StatusOK, w.Code)

	var resp statusResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(testDN, resp.Identity)
	s.False(resp.PasswordStatus.Expired)
	s.False(resp.PasswordStatus.PreExpired)
	s.NotNil(resp.PasswordExpiration)
	s.Nil(resp.LastLogin)
}

func (s *HandlerSuite) TestStatusReportsExpiredPassword() {
	s.dir.SetPasswordExpired(testDN, true)

	w := s.get(s.statusPath(), s.token())
	s.Equal(http.StatusOK, w.Code)

	var resp statusResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.PasswordStatus.Expired)
	s.True(resp.PasswordStatus.PreExpired)
}

func (s *HandlerSuite) TestRemediationHappyPath() {
	w := s.get("/v1/identities/"+url.PathEscape(testDN)+"/remediation", s.token())
	s.Equal(http.StatusOK, w.Code)

	var verdict userinfo.RemediationVerdict
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &verdict))
	s.False(verdict.NewPassword)
	s.False(verdict.OTPSetup)
	s.False(verdict.ResponseSetup)
	s.False(verdict.ProfileUpdate)
}

func (s *HandlerSuite) TestProfileHappyPath() {
	w := s.get("/v1/identities/"+url.PathEscape(testDN)+"/profile", s.token())
	s.Equal(http.StatusOK, w.Code)

	var resp profileResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("alice", resp.Username)
	s.Equal("alice@example.org", resp.Email)
	s.NotEmpty(resp.GUID, "missing directory GUID falls back to a generated one")
	s.Equal("default", resp.ProfileIDs[string(domain.ProfileCategoryPasswordPolicy)])
}

func (s *HandlerSuite) TestHealthEndpointIsUnauthenticated() {
	w := s.get("/healthz", "")
	s.Equal(http.StatusOK, w.Code)
}

func TestHandlerRejectsEmptyDN(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := &Handler{logger: logger}

	req := httptest.NewRequest(http.MethodGet, "/v1/identities/%20/status", nil)
	_, err := h.evaluator(req)
	require.Error(t, err)
}

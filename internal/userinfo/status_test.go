package userinfo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"credstate/internal/domain"
	"credstate/internal/policy"
	"credstate/internal/userinfo/ports"
	"credstate/pkg/platform/sentinel"
)

func TestDerivePasswordStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	windows := domain.ExpirationWindows{
		PreExpire: 24 * time.Hour,
		Warn:      48 * time.Hour,
	}

	tests := []struct {
		name string
		in   statusInputs
		want domain.PasswordStatus
	}{
		{
			name: "inside both windows",
			in: statusInputs{
				expirationTime: now.Add(12 * time.Hour),
				windows:        windows,
				now:            now,
			},
			want: domain.PasswordStatus{PreExpired: true, WarnPeriod: true},
		},
		{
			name: "inside warn window only",
			in: statusInputs{
				expirationTime: now.Add(36 * time.Hour),
				windows:        windows,
				now:            now,
			},
			want: domain.PasswordStatus{WarnPeriod: true},
		},
		{
			name: "outside all windows",
			in: statusInputs{
				expirationTime: now.Add(30 * 24 * time.Hour),
				windows:        windows,
				now:            now,
			},
			want: domain.PasswordStatus{},
		},
		{
			name: "expired flag forces pre-expired and warn",
			in: statusInputs{
				expired: true,
				windows: windows,
				now:     now,
			},
			want: domain.PasswordStatus{Expired: true, PreExpired: true, WarnPeriod: true},
		},
		{
			name: "no expiration time and not expired",
			in: statusInputs{
				windows: windows,
				now:     now,
			},
			want: domain.PasswordStatus{},
		},
		{
			name: "warn window of zero disables warn",
			in: statusInputs{
				expirationTime: now.Add(time.Hour),
				windows:        domain.ExpirationWindows{PreExpire: 24 * time.Hour},
				now:            now,
			},
			want: domain.PasswordStatus{PreExpired: true},
		},
		{
			name: "warn shorter than pre-expire disables warn",
			in: statusInputs{
				expirationTime: now.Add(time.Hour),
				windows: domain.ExpirationWindows{
					PreExpire: 48 * time.Hour,
					Warn:      24 * time.Hour,
				},
				now: now,
			},
			want: domain.PasswordStatus{PreExpired: true},
		},
		{
			name: "past expiration time without directory flag is outside windows",
			in: statusInputs{
				expirationTime: now.Add(-time.Hour),
				windows:        windows,
				now:            now,
			},
			want: domain.PasswordStatus{},
		},
		{
			name: "policy violation is independent of windows",
			in: statusInputs{
				violatesPolicy: true,
				expirationTime: now.Add(30 * 24 * time.Hour),
				windows:        windows,
				now:            now,
			},
			want: domain.PasswordStatus{ViolatesPolicy: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, derivePasswordStatus(tt.in))
		})
	}
}

// Flags must never clear as the expiration approaches.
func TestDerivePasswordStatus_MonotonicAsExpirationNears(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	windows := domain.ExpirationWindows{
		PreExpire: 24 * time.Hour,
		Warn:      48 * time.Hour,
	}

	var prev domain.PasswordStatus
	for remaining := 72 * time.Hour; remaining > 0; remaining -= time.Hour {
		status := derivePasswordStatus(statusInputs{
			expirationTime: now.Add(remaining),
			windows:        windows,
			now:            now,
		})
		if prev.PreExpired {
			assert.True(t, status.PreExpired, "pre-expired cleared at remaining=%s", remaining)
		}
		if prev.WarnPeriod {
			assert.True(t, status.WarnPeriod, "warn cleared at remaining=%s", remaining)
		}
		prev = status
	}
}

// expectStatusInputs wires the minimum expectations for a PasswordStatus
// resolution: profile discovery, rules, overrides, the directory expired flag,
// the expiration timestamp, and both window settings.
func expectStatusInputs(m *mockPorts, rules domain.RuleSet, expired bool, expiration time.Time, preSec, warnSec int64) {
	expectProfileDiscovery(m, "default")
	m.policy.EXPECT().
		PasswordRules(gomock.Any(), "default").
		Return(rules, nil)
	m.directory.EXPECT().
		ReadAttribute(gomock.Any(), testIdentity, policy.RuleOverrideAttribute).
		Return("", sentinel.ErrNotFound)
	m.directory.EXPECT().
		PasswordExpired(gomock.Any(), testIdentity).
		Return(expired, nil)
	m.directory.EXPECT().
		ReadTimestamp(gomock.Any(), testIdentity, domain.TimestampPasswordExpiration).
		Return(expiration, nil)
	m.policy.EXPECT().
		Seconds(gomock.Any(), ports.SettingPasswordPreExpireTime, ports.Global).
		Return(preSec, nil)
	m.policy.EXPECT().
		Seconds(gomock.Any(), ports.SettingPasswordWarnTime, ports.Global).
		Return(warnSec, nil)
}

func TestPasswordStatus_ComputedOnceThroughPorts(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockPorts(ctrl)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expectStatusInputs(m, domain.RuleSet{}, false, now.Add(12*time.Hour), 86400, 172800)

	e := newEvaluator(t, m, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	status, err := e.PasswordStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.PreExpired)
	assert.True(t, status.WarnPeriod)
	assert.False(t, status.Expired)

	// All port expectations are Times(1) by default; a second call must be
	// answered from the cache.
	again, err := e.PasswordStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, status, again)
}

func TestPasswordStatus_EnforceAtLoginTestsCurrentPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockPorts(ctrl)

	rules := domain.RuleSet{domain.RuleEnforceAtLogin: "true"}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expectStatusInputs(m, rules, false, time.Time{}, 0, 0)

	// Username and rule-referenced attributes feed the validator context.
	m.policy.EXPECT().
		String(gomock.Any(), ports.SettingUsernameAttribute, gomock.Any()).
		Return("uid", nil)
	m.directory.EXPECT().
		ReadAttribute(gomock.Any(), testIdentity, "uid").
		Return("alice", nil)
	m.passwords.EXPECT().
		Test(gomock.Any(), "hunter2", gomock.Any(), []string{"alice"}).
		Return(&ports.ValidationError{Field: "minimum-length", Reason: "too short"})

	e := newEvaluator(t, m,
		WithCurrentPassword("hunter2"),
		WithClock(func() time.Time { return now }),
	)
	status, err := e.PasswordStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.ViolatesPolicy)
	assert.True(t, status.AnyFlag())
}

func TestPasswordStatus_ValidatorOutageIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockPorts(ctrl)

	rules := domain.RuleSet{domain.RuleEnforceAtLogin: "true"}
	expectProfileDiscovery(m, "default")
	m.policy.EXPECT().
		PasswordRules(gomock.Any(), "default").
		Return(rules, nil)
	m.directory.EXPECT().
		ReadAttribute(gomock.Any(), testIdentity, policy.RuleOverrideAttribute).
		Return("", sentinel.ErrNotFound)
	m.policy.EXPECT().
		String(gomock.Any(), ports.SettingUsernameAttribute, gomock.Any()).
		Return("uid", nil)
	m.directory.EXPECT().
		ReadAttribute(gomock.Any(), testIdentity, "uid").
		Return("alice", nil)
	m.passwords.EXPECT().
		Test(gomock.Any(), "hunter2", gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("policy backend: %w", sentinel.ErrUnavailable))

	e := newEvaluator(t, m, WithCurrentPassword("hunter2"))
	_, err := e.PasswordStatus(context.Background())
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestPasswordStatus_ExpiredFlagReadErrorDegradesToFalse(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockPorts(ctrl)

	expectProfileDiscovery(m, "default")
	m.policy.EXPECT().
		PasswordRules(gomock.Any(), "default").
		Return(domain.RuleSet{}, nil)
	m.directory.EXPECT().
		ReadAttribute(gomock.Any(), testIdentity, policy.RuleOverrideAttribute).
		Return("", sentinel.ErrNotFound)
	m.directory.EXPECT().
		PasswordExpired(gomock.Any(), testIdentity).
		Return(false, fmt.Errorf("malformed response"))
	m.directory.EXPECT().
		ReadTimestamp(gomock.Any(), testIdentity, domain.TimestampPasswordExpiration).
		Return(time.Time{}, sentinel.ErrNotFound)
	m.policy.EXPECT().
		Seconds(gomock.Any(), gomock.Any(), ports.Global).
		Return(int64(0), nil).
		Times(2)

	e := newEvaluator(t, m)
	status, err := e.PasswordStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Expired)
	assert.False(t, status.AnyFlag())
}

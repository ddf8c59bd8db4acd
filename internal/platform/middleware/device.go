package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

type contextKeyDeviceLabel struct{}

// GetDeviceLabel retrieves the human readable device label from the context.
func GetDeviceLabel(ctx context.Context) string {
	if label, ok := ctx.Value(contextKeyDeviceLabel{}).(string); ok {
		return label
	}
	return ""
}

// WithDeviceLabel injects a device label into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithDeviceLabel(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, contextKeyDeviceLabel{}, label)
}

// DeviceLabel derives a display label from the User-Agent header so audit
// events can name the client device.
func DeviceLabel(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		label := ParseUserAgent(r.UserAgent())
		ctx := WithDeviceLabel(r.Context(), label)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ParseUserAgent turns a raw user-agent string into a "Browser on OS" label.
func ParseUserAgent(raw string) string {
	if raw == "" {
		return "Unknown Device"
	}
	ua := useragent.New(raw)
	name, _ := ua.Browser()
	if name == "" {
		name = "Unknown Browser"
	}
	os := ua.OS()
	if os == "" {
		os = ua.Platform()
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(name + " on " + os)
}

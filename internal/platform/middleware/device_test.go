package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DeviceLabelSuite struct {
	suite.Suite
}

func TestDeviceLabelSuite(t *testing.T) {
	suite.Run(t, new(DeviceLabelSuite))
}

func (s *DeviceLabelSuite) TestParseUserAgent() {
	s.Run("empty user agent returns unknown device", func() {
		s.Equal("Unknown Device", ParseUserAgent(""))
	})

	s.Run("chrome on desktop includes browser and OS", func() {
		ua := "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
		result := ParseUserAgent(ua)
		s.Contains(result, "Chrome")
		s.Contains(result, "on")
		s.NotContains(result, "  ")
	})

	s.Run("firefox on linux includes browser and OS", func() {
		ua := "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
		result := ParseUserAgent(ua)
		s.Contains(result, "Firefox")
		s.Contains(result, "on")
	})

	s.Run("unknown user agent still yields a label", func() {
		result := ParseUserAgent("Unknown/1.0")
		s.Contains(result, "on")
		s.NotEmpty(result)
	})

	s.Run("result has no leading or trailing whitespace", func() {
		ua := "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
		result := ParseUserAgent(ua)
		s.Equal(result, strings.TrimSpace(result))
	})
}

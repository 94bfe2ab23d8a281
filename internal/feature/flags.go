// Package feature resolves the feature-flag set from loosely typed sources.
// Resolution is best-effort by contract: anything absent or malformed falls
// back to the documented default instead of failing the run.
package feature

import (
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/John-Robertt/policygen-go/internal/model"
)

// Canonical flag keys. Sources map their own naming onto these.
const (
	KeyLoadBalance = "loadbalance"
	KeyLanding     = "landing"
	KeyIPv6        = "ipv6"
	KeyFullConfig  = "fullconfig"
	KeyKeepAlive   = "keepalive"
	KeyFakeIP      = "fakeip"
	KeyQUIC        = "quic"
	KeyRegexFilter = "regexfilter"
	KeyThreshold   = "threshold"
)

// Resolve builds Flags from a key-value getter. Missing keys return "".
func Resolve(get func(key string) string) model.Flags {
	return model.Flags{
		LoadBalance:      parseBool(get(KeyLoadBalance)),
		Landing:          parseBool(get(KeyLanding)),
		IPv6:             parseBool(get(KeyIPv6)),
		FullConfig:       parseBool(get(KeyFullConfig)),
		KeepAlive:        parseBool(get(KeyKeepAlive)),
		FakeIP:           parseBool(get(KeyFakeIP)),
		QUIC:             parseBool(get(KeyQUIC)),
		RegexFilter:      parseBool(get(KeyRegexFilter)),
		CountryThreshold: parseThreshold(get(KeyThreshold)),
	}
}

// FromQuery resolves flags from URL query parameters (the HTTP surface).
func FromQuery(q url.Values) model.Flags {
	return Resolve(func(key string) string { return q.Get(key) })
}

// FromEnv resolves flags from POLICYGEN_* environment variables.
func FromEnv() model.Flags {
	return Resolve(func(key string) string {
		return os.Getenv("POLICYGEN_" + strings.ToUpper(key))
	})
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		// Anything else, including garbage, is the default: off.
		return false
	}
}

func parseThreshold(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

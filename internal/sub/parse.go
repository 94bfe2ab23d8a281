// Package sub parses an already-fetched subscription payload into proxies.
// It never fetches anything itself.
//
// Two payload shapes are understood: a clash-style YAML document with a
// proxies list, and a URI line list (optionally base64-wrapped). Per-node
// problems are tolerated: a malformed entry is skipped, not fatal.
package sub

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/John-Robertt/policygen-go/internal/model"
)

type ParseError struct {
	AppError model.AppError
	Cause    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ParsePayload detects the payload shape and parses it. An empty payload is
// zero nodes, not an error.
func ParsePayload(content string) ([]model.Proxy, error) {
	s := stripUTF8BOM(content)
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if looksLikeYAML(s) {
		return parseClashYAML(s)
	}
	if strings.Contains(s, "://") {
		return parseURIList(s), nil
	}

	decoded, err := decodeSubscriptionBase64(s)
	if err != nil {
		return nil, &ParseError{
			AppError: model.AppError{
				Code:    "SUB_PARSE_ERROR",
				Message: "无法识别的订阅内容（非 YAML / URI 列表 / base64）",
				Stage:   "parse_sub",
				Snippet: truncateSnippet(s, 200),
			},
			Cause: err,
		}
	}
	decoded = strings.TrimSpace(stripUTF8BOM(decoded))
	if decoded == "" {
		return nil, nil
	}
	if looksLikeYAML(decoded) {
		return parseClashYAML(decoded)
	}
	return parseURIList(decoded), nil
}

func looksLikeYAML(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.HasPrefix(line, "proxies:") || strings.Contains(line, ": ") || strings.HasSuffix(line, ":")
	}
	return false
}

type rawDocument struct {
	Proxies []map[string]any `yaml:"proxies"`
}

func parseClashYAML(s string) ([]model.Proxy, error) {
	var doc rawDocument
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return nil, &ParseError{
			AppError: model.AppError{
				Code:    "SUB_PARSE_ERROR",
				Message: "订阅 YAML 解析失败",
				Stage:   "parse_sub",
				Snippet: truncateSnippet(s, 200),
			},
			Cause: err,
		}
	}

	out := make([]model.Proxy, 0, len(doc.Proxies))
	for _, entry := range doc.Proxies {
		name, _ := entry["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" || strings.ContainsAny(name, "\r\n\x00") {
			continue
		}
		server, _ := entry["server"].(string)

		extra := make(map[string]any, len(entry))
		for k, v := range entry {
			if k == "name" || k == "server" {
				continue
			}
			extra[k] = v
		}
		out = append(out, model.Proxy{Name: name, Server: strings.TrimSpace(server), Extra: extra})
	}
	return out, nil
}

// parseURIList extracts name and server from share links, one per line.
// It deliberately does not validate protocol fields: a line it cannot make
// sense of is dropped.
func parseURIList(raw string) []model.Proxy {
	lines := strings.Split(raw, "\n")
	out := make([]model.Proxy, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, ok := parseShareLink(line)
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

func parseShareLink(line string) (model.Proxy, bool) {
	scheme, rest, ok := strings.Cut(line, "://")
	if !ok || scheme == "" || rest == "" {
		return model.Proxy{}, false
	}

	withoutFrag, frag, hasFrag := strings.Cut(rest, "#")
	name := ""
	if hasFrag {
		if decoded, err := url.PathUnescape(frag); err == nil {
			name = strings.TrimSpace(decoded)
		}
	}
	server := hostOf(withoutFrag)
	if name == "" {
		if server == "" {
			return model.Proxy{}, false
		}
		name = server
	}
	// Checked after the server fallback: a control character can arrive in
	// either the fragment or the host part.
	if strings.ContainsAny(name, "\r\n\x00") {
		return model.Proxy{}, false
	}

	return model.Proxy{
		Name:   name,
		Server: server,
		Extra:  map[string]any{"type": scheme, "uri": line},
	}, true
}

// hostOf pulls the host out of the part between scheme and fragment. For
// base64-packed bodies (vmess style) there is no addressable host; that is
// fine, the server only feeds the optional GeoIP fallback.
func hostOf(s string) string {
	if q := strings.IndexByte(s, '?'); q >= 0 {
		s = s[:q]
	}
	if at := strings.LastIndexByte(s, '@'); at >= 0 {
		s = s[at+1:]
	}
	if slash := strings.IndexByte(s, '/'); slash >= 0 {
		s = s[:slash]
	}
	if colon := strings.LastIndexByte(s, ':'); colon >= 0 {
		host := s[:colon]
		if host != "" {
			return strings.Trim(host, "[]")
		}
	}
	return ""
}

func decodeSubscriptionBase64(s string) (string, error) {
	s2 := removeSpaceTabCRLF(s)
	b, err := decodeB64ToBytes(s2)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("decoded subscription is not valid utf-8")
	}
	return string(b), nil
}

func decodeB64ToBytes(s string) ([]byte, error) {
	// Try standard alphabet (with padding) first, then URL-safe, then raw.
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.RawURLEncoding,
	}
	var lastErr error
	for _, enc := range encodings {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func removeSpaceTabCRLF(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func stripUTF8BOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

func truncateSnippet(s string, max int) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	return s[:max]
}

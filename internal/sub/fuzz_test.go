package sub

import (
	"strings"
	"testing"
)

func FuzzParsePayload(f *testing.F) {
	seed := []string{
		"",
		"   \n",
		"# comment\nss://YWVzLTEyOC1nY206cGFzcw==@example.com:8388#Node%201\n",
		"ss://method:pass@[::1]:8388#ipv6\n",
		"trojan://pass@jp.example.com:443?sni=jp.example.com#%E6%97%A5%E6%9C%AC-1\n",
		"proxies:\n  - name: 香港-1\n    server: hk.example.com\n    type: ss\n",
		"proxies: []\n",
		"c3M6Ly9tOnBAaGsuZXhhbXBsZS5jb206ODM4OCNISy0x",
		"vmess://eyJhZGQiOiJzZy5leGFtcGxlLmNvbSJ9\n",
		"!!! garbage !!!",
	}
	for _, s := range seed {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, content string) {
		proxies, err := ParsePayload(content)
		if err != nil {
			return
		}

		for _, p := range proxies {
			if p.Name == "" {
				t.Fatalf("empty proxy name")
			}
			if strings.ContainsAny(p.Name, "\r\n\x00") {
				t.Fatalf("control characters in proxy name: %q", p.Name)
			}
		}
	})
}

func FuzzParseShareLink(f *testing.F) {
	seed := []string{
		"",
		"ss://m:p@hk.example.com:8388#HK-1",
		"ss://m:p@hk.example.com:8388#%E9%A6%99%E6%B8%AF",
		"trojan://pass@host:443?sni=host#name",
		"vmess://eyJhZGQiOiJzZy5leGFtcGxlLmNvbSJ9",
		"://no-scheme",
		"ss://",
		"ss://#only-frag",
	}
	for _, s := range seed {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, line string) {
		p, ok := parseShareLink(line)
		if !ok {
			return
		}

		if p.Name == "" {
			t.Fatalf("empty name on ok result")
		}
		if strings.ContainsAny(p.Name, "\r\n\x00") {
			t.Fatalf("control characters in name: %q", p.Name)
		}
		if p.Extra["type"] == "" {
			t.Fatalf("empty scheme in extra")
		}
		if p.Extra["uri"] != line {
			t.Fatalf("original line not preserved: %v", p.Extra["uri"])
		}
	})
}

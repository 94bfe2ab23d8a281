// Package static holds the fixed rule/DNS/sniffer tables merged around the
// generated groups. The tables are opaque constants to the grouping core;
// only their group-name references are validated.
package static

import (
	"github.com/John-Robertt/policygen-go/internal/model"
	"github.com/John-Robertt/policygen-go/internal/policy"
)

// Rules returns the ordered rule lines. The QUIC block line, when enabled,
// must come first so it wins before any sniff-based rule.
func Rules(flags model.Flags) []string {
	out := make([]string, 0, 32)
	if flags.QUIC {
		out = append(out, "AND,((NETWORK,udp),(DST-PORT,443)),"+model.Reject)
	}
	out = append(out,
		"GEOSITE,category-ads-all,广告拦截",
		"GEOSITE,private,"+model.Direct,
		"GEOIP,private,"+model.Direct+",no-resolve",
		"GEOSITE,bilibili,哔哩哔哩",
		"GEOSITE,bahamut,巴哈姆特",
		"GEOSITE,niconico,NicoNico",
		"GEOSITE,telegram,电报消息",
		"GEOIP,telegram,电报消息,no-resolve",
		"GEOSITE,youtube,油管视频",
		"GEOSITE,netflix,奈飞视频",
		"GEOIP,netflix,奈飞视频,no-resolve",
		"GEOSITE,disney,迪士尼",
		"GEOSITE,openai,OpenAI",
		"GEOSITE,spotify,声田音乐",
		"GEOSITE,tiktok,TikTok",
		"GEOSITE,google,谷歌服务",
		"GEOIP,google,谷歌服务,no-resolve",
		"GEOSITE,microsoft,微软服务",
		"GEOSITE,apple,苹果服务",
		"GEOSITE,category-games,游戏平台",
		"GEOSITE,cn,国内网站",
		"GEOIP,cn,国内网站,no-resolve",
		"MATCH,"+policy.NameFinal,
	)
	return out
}

// DNS is the resolver block of the merged document.
type DNS struct {
	Enable         bool     `yaml:"enable"`
	IPv6           bool     `yaml:"ipv6"`
	EnhancedMode   string   `yaml:"enhanced-mode"`
	FakeIPRange    string   `yaml:"fake-ip-range,omitempty"`
	FakeIPFilter   []string `yaml:"fake-ip-filter,omitempty"`
	DefaultServers []string `yaml:"default-nameserver"`
	Nameserver     []string `yaml:"nameserver"`
}

func DNSBlock(flags model.Flags) DNS {
	d := DNS{
		Enable:         true,
		IPv6:           flags.IPv6,
		EnhancedMode:   "redir-host",
		DefaultServers: []string{"223.5.5.5", "119.29.29.29"},
		Nameserver:     []string{"https://doh.pub/dns-query", "https://dns.alidns.com/dns-query"},
	}
	if flags.FakeIP {
		d.EnhancedMode = "fake-ip"
		d.FakeIPRange = "198.18.0.1/16"
		d.FakeIPFilter = []string{"geosite:private", "geosite:cn", "*.lan"}
	}
	return d
}

// Sniffer is the traffic-sniffing block of the merged document.
type Sniffer struct {
	Enable bool                  `yaml:"enable"`
	Sniff  map[string]SniffEntry `yaml:"sniff"`
}

type SniffEntry struct {
	Ports []string `yaml:"ports"`
}

func SnifferBlock(flags model.Flags) Sniffer {
	s := Sniffer{
		Enable: true,
		Sniff: map[string]SniffEntry{
			"HTTP": {Ports: []string{"80", "8080-8880"}},
			"TLS":  {Ports: []string{"443", "8443"}},
		},
	}
	// When QUIC is blocked there is nothing to sniff on it.
	if !flags.QUIC {
		s.Sniff["QUIC"] = SniffEntry{Ports: []string{"443", "8443"}}
	}
	return s
}

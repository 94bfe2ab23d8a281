// Package policy assembles the ordered policy-group sequence from one
// classification snapshot and the resolved feature flags.
package policy

// Functional group names. Singleton roles: each appears at most once per run.
const (
	NameSelector   = "节点选择"
	NameManual     = "手动切换"
	NameFallback   = "故障转移"
	NameFrontProxy = "前置代理"
	NameLanding    = "落地节点"
	NameLowCost    = "省流节点"
	NameFinal      = "漏网之鱼"
)

// Latency probe settings for url-test and fallback groups.
const (
	probeURL         = "https://www.gstatic.com/generate_204"
	probeIntervalSec = 60
	probeToleranceMS = 20
)

const iconBase = "https://raw.githubusercontent.com/Koolson/Qure/master/IconSet/Color/"

package model

// Group types understood by the downstream rule engine.
const (
	GroupSelect      = "select"
	GroupURLTest     = "url-test"
	GroupLoadBalance = "load-balance"
	GroupFallback    = "fallback"
)

// Built-in outbounds of the client. Valid candidate names and rule actions,
// never groups this pipeline emits.
const (
	Direct = "DIRECT"
	Reject = "REJECT"
)

// HealthCheck is the probe block attached to url-test groups.
type HealthCheck struct {
	URL         string `yaml:"url"`
	IntervalSec int    `yaml:"interval"`
	ToleranceMS int    `yaml:"tolerance"`
	Lazy        bool   `yaml:"lazy"`
}

// Group is one policy group in the final ordered sequence.
//
// A group is either enumerated (Proxies set, filter fields empty) or
// runtime-filtered (IncludeAll set with Filter/ExcludeFilter, Proxies nil).
// The two forms are built by separate constructors in the policy package;
// they are never mixed on one value.
type Group struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	Proxies []string `yaml:"proxies,omitempty"`

	IncludeAll    bool   `yaml:"include-all,omitempty"`
	Filter        string `yaml:"filter,omitempty"`
	ExcludeFilter string `yaml:"exclude-filter,omitempty"`

	Icon string `yaml:"icon,omitempty"`

	HealthCheck *HealthCheck `yaml:"health-check,omitempty"`
}

// Filtered reports whether the group resolves its members at evaluation
// time instead of carrying an enumerated candidate list.
func (g Group) Filtered() bool { return g.IncludeAll }

package model

// Flags is the resolved feature-flag set steering one generation run.
// The zero value is the documented default: every toggle off, threshold 0.
type Flags struct {
	// LoadBalance switches country groups from url-test to load-balance.
	LoadBalance bool
	// Landing enables the landing-node group and the front-proxy chain.
	Landing bool
	// IPv6 enables IPv6 resolution in the merged document.
	IPv6 bool
	// FullConfig includes the general settings block in the document.
	FullConfig bool
	// KeepAlive sets the TCP keep-alive interval in the document.
	KeepAlive bool
	// FakeIP selects fake-ip DNS mode instead of redir-host.
	FakeIP bool
	// QUIC blocks QUIC traffic via the sniffer/rule tables.
	QUIC bool
	// RegexFilter makes country groups resolve members at evaluation time
	// through include-all + filter instead of enumerated candidates.
	RegexFilter bool

	// CountryThreshold is the minimum bucket size for a country to surface
	// as a group. Never negative.
	CountryThreshold int
}

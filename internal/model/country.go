package model

// CountryMeta is one entry of the fixed country table. Declaration order in
// the table is significant: it is the classifier's first-match tie-break and
// the sort tie-break for equal weights.
type CountryMeta struct {
	// Key is the bucket key, an ISO-style country code (e.g. "HK").
	Key string
	// GroupName is the policy-group name emitted for this country.
	GroupName string
	// Weight orders country groups ascending; 0 means unset and sorts
	// after every weighted entry.
	Weight int
	// Pattern is the regex source matched against node names.
	Pattern string
	// Icon is a decorative URL passed through to the group.
	Icon string
}

// Bucket is the per-run set of node names assigned to one country.
// Buckets are rebuilt from scratch on every invocation and never persisted.
type Bucket struct {
	Country string
	Nodes   []string
}

package geoip

import (
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/oschwald/maxminddb-golang"
)

// Resolver answers "which country is this address in" from a local MMDB
// snapshot. It performs no network I/O: hostnames that are not IP literals
// resolve to nothing.
type Resolver struct {
	db *maxminddb.Reader
}

func Open(path string) (*Resolver, error) {
	db, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mmdb: %w", err)
	}
	return &Resolver{db: db}, nil
}

func FromBytes(data []byte) (*Resolver, error) {
	db, err := maxminddb.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("open mmdb: %w", err)
	}
	return &Resolver{db: db}, nil
}

func (r *Resolver) Close() error { return r.db.Close() }

// CountryCode returns the upper-case ISO code for the host, or "" when the
// host is not an IP literal, is absent from the database, or carries no
// country record. Lookups are pure reads; identical input always yields the
// same answer.
func (r *Resolver) CountryCode(host string) string {
	if r == nil || host == "" {
		return ""
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(host))
	if err != nil {
		return ""
	}

	var record any
	if err := r.db.Lookup(net.IP(addr.AsSlice()), &record); err != nil {
		return ""
	}
	return strings.ToUpper(extractISOCode(record))
}

// extractISOCode tolerates the record layouts seen in the wild: GeoLite2
// country documents, bare iso_code maps, and databases that store the code
// as a plain string.
func extractISOCode(record any) string {
	switch v := record.(type) {
	case string:
		return v
	case map[string]any:
		if c, ok := v["country"].(map[string]any); ok {
			if iso, ok := c["iso_code"].(string); ok {
				return iso
			}
		}
		if iso, ok := v["iso_code"].(string); ok {
			return iso
		}
		if s, ok := v["code"].(string); ok {
			return s
		}
	}
	return ""
}

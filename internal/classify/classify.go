// Package classify partitions subscription nodes into country buckets and
// the landing / low-cost name sets.
package classify

import (
	"github.com/John-Robertt/policygen-go/internal/geodata"
	"github.com/John-Robertt/policygen-go/internal/model"
)

// Lookup resolves a server address to an ISO country code. It must be pure:
// identical input, identical answer. A nil Lookup disables the fallback.
type Lookup interface {
	CountryCode(host string) string
}

// Result is one run's partition. Buckets appear in table declaration order
// and only for countries that received at least one node; names inside each
// set keep subscription order.
type Result struct {
	Buckets      []model.Bucket
	LandingNames []string
	LowCostNames []string
}

// Nodes returns the bucket contents for a country key, or nil.
func (r Result) Nodes(country string) []string {
	for _, b := range r.Buckets {
		if b.Country == country {
			return b.Nodes
		}
	}
	return nil
}

// Classify walks the nodes once, in input order. Per node:
//
//  1. landing pattern match → landing set, done
//  2. low-cost pattern match → low-cost set, done
//  3. first country pattern match in declaration order → that bucket, done
//  4. optional GeoIP fallback on the server address, for declared
//     countries only
//  5. otherwise the node stays out of every set; it still passes through
//     as a raw proxy downstream
//
// Step order is deliberate and worth knowing as an operator: a node named
// both "省流" and "香港" is a low-cost node, never a Hong Kong one.
func Classify(nodes []model.Proxy, table *geodata.Table, lookup Lookup) Result {
	byCountry := make(map[string][]string)
	var res Result

	for _, n := range nodes {
		switch {
		case table.MatchLanding(n.Name):
			res.LandingNames = append(res.LandingNames, n.Name)
		case table.MatchLowCost(n.Name):
			res.LowCostNames = append(res.LowCostNames, n.Name)
		default:
			if key, ok := table.Match(n.Name); ok {
				byCountry[key] = append(byCountry[key], n.Name)
				continue
			}
			if lookup == nil {
				continue
			}
			code := lookup.CountryCode(n.Server)
			if code == "" {
				continue
			}
			if _, ok := table.Meta(code); ok {
				byCountry[code] = append(byCountry[code], n.Name)
			}
		}
	}

	for _, cm := range table.Countries() {
		if names := byCountry[cm.Key]; len(names) > 0 {
			res.Buckets = append(res.Buckets, model.Bucket{Country: cm.Key, Nodes: names})
		}
	}
	return res
}

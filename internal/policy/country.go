package policy

import (
	"github.com/John-Robertt/policygen-go/internal/geodata"
	"github.com/John-Robertt/policygen-go/internal/model"
)

func probe() *model.HealthCheck {
	return &model.HealthCheck{
		URL:         probeURL,
		IntervalSec: probeIntervalSec,
		ToleranceMS: probeToleranceMS,
		Lazy:        false,
	}
}

// CountryGroups emits one health-checked group per surfaced country, in the
// order given. The group type follows the LoadBalance flag; load-balance
// groups carry no probe block because balancing does not rank by latency.
//
// Enumerated mode lists the bucket's node names. Regex mode defers
// membership to evaluation time: include-all plus the country pattern as
// filter, with the classifier's landing/low-cost exclusions re-applied via
// exclude-filter.
func CountryGroups(surfaced []model.CountryMeta, nodes func(country string) []string, table *geodata.Table, flags model.Flags) []model.Group {
	typ := model.GroupURLTest
	if flags.LoadBalance {
		typ = model.GroupLoadBalance
	}

	out := make([]model.Group, 0, len(surfaced))
	for _, cm := range surfaced {
		g := model.Group{
			Name: cm.GroupName,
			Type: typ,
			Icon: cm.Icon,
		}
		if flags.RegexFilter {
			g.IncludeAll = true
			g.Filter = cm.Pattern
			g.ExcludeFilter = table.ExcludeSource(flags.Landing)
		} else {
			g.Proxies = nodes(cm.Key)
		}
		if typ == model.GroupURLTest {
			g.HealthCheck = probe()
		}
		out = append(out, g)
	}
	return out
}

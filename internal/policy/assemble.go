package policy

import (
	"sort"

	"github.com/John-Robertt/policygen-go/internal/classify"
	"github.com/John-Robertt/policygen-go/internal/geodata"
	"github.com/John-Robertt/policygen-go/internal/model"
)

// Assemble composes the final ordered group sequence from one classification
// snapshot. It is a pure function: same snapshot, same flags, same table,
// same output.
//
// Emission order: Selector, Manual, [Front-Proxy, Landing], Fallback,
// tracked services, country groups, [LowCost], catch-all. Every name is
// unique by construction: one group per fixed service, one per surfaced
// country, one per singleton functional role.
func Assemble(cls classify.Result, flags model.Flags, table *geodata.Table) []model.Group {
	surfaced := surface(cls, flags, table)

	groupNames := make([]string, len(surfaced))
	byKey := make(map[string]string, len(surfaced))
	for i, cm := range surfaced {
		groupNames[i] = cm.GroupName
		byKey[cm.Key] = cm.GroupName
	}

	hasLowCost := len(cls.LowCostNames) > 0
	lowCost := hasLowCost || flags.RegexFilter
	lists := BuildLists(groupNames, flags, hasLowCost)
	countries := CountryGroups(surfaced, cls.Nodes, table, flags)

	out := make([]model.Group, 0, len(countries)+len(trackedServices)+8)

	out = append(out, model.Group{
		Name:    NameSelector,
		Type:    model.GroupSelect,
		Proxies: lists.Selector,
		Icon:    iconBase + "Proxy.png",
	})
	out = append(out, model.Group{
		Name:       NameManual,
		Type:       model.GroupSelect,
		IncludeAll: true,
		Icon:       iconBase + "Static.png",
	})

	if flags.Landing {
		out = append(out, model.Group{
			Name:    NameFrontProxy,
			Type:    model.GroupSelect,
			Proxies: without(lists.Selector, NameLanding, NameFallback),
			Icon:    iconBase + "Area.png",
		})
		out = append(out, landingGroup(cls, flags, table))
	}

	out = append(out, model.Group{
		Name:        NameFallback,
		Type:        model.GroupFallback,
		Proxies:     lists.Fallback,
		Icon:        iconBase + "Available.png",
		HealthCheck: probe(),
	})

	for _, svc := range trackedServices {
		out = append(out, model.Group{
			Name:    svc.name,
			Type:    model.GroupSelect,
			Proxies: serviceProxies(svc, lists, byKey),
			Icon:    svc.icon,
		})
	}

	out = append(out, countries...)

	if lowCost {
		out = append(out, lowCostGroup(cls, flags, table))
	}

	// Catch-all last: its candidates are exactly the names of everything
	// built so far, in construction order.
	names := make([]string, len(out))
	for i, g := range out {
		names[i] = g.Name
	}
	out = append(out, model.Group{
		Name:    NameFinal,
		Type:    model.GroupSelect,
		Proxies: names,
		Icon:    iconBase + "Final.png",
	})

	return out
}

// surface filters buckets by the country threshold and orders the survivors:
// ascending weight, unweighted entries after all weighted ones, ties in
// table declaration order. Bucket keys missing from the table are skipped
// silently; they are stale input, not an error.
func surface(cls classify.Result, flags model.Flags, table *geodata.Table) []model.CountryMeta {
	size := make(map[string]int, len(cls.Buckets))
	for _, b := range cls.Buckets {
		size[b.Country] = len(b.Nodes)
	}

	out := make([]model.CountryMeta, 0, len(cls.Buckets))
	for _, cm := range table.Countries() {
		n := size[cm.Key]
		if n == 0 || n < flags.CountryThreshold {
			continue
		}
		out = append(out, cm)
	}

	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := out[i].Weight, out[j].Weight
		if wi == 0 {
			return false
		}
		if wj == 0 {
			return true
		}
		return wi < wj
	})
	return out
}

// serviceProxies picks the candidate list for a tracked service. Three
// services take curated region-first lists, but only when the region's
// group actually surfaced: a below-threshold bucket must not be referenced.
func serviceProxies(svc service, lists Lists, byKey map[string]string) []string {
	switch svc.name {
	case "哔哩哔哩":
		hk, hasHK := byKey["HK"]
		tw, hasTW := byKey["TW"]
		switch {
		case hasHK && hasTW:
			return []string{model.Direct, tw, hk, NameSelector, NameManual}
		case hasTW:
			return []string{model.Direct, tw, NameSelector, NameManual}
		case hasHK:
			return []string{model.Direct, hk, NameSelector, NameManual}
		}
	case "巴哈姆特":
		if tw, ok := byKey["TW"]; ok {
			return []string{tw, NameSelector, NameManual, model.Direct}
		}
	case "NicoNico":
		if jp, ok := byKey["JP"]; ok {
			return []string{jp, NameSelector, NameManual, model.Direct}
		}
	}

	switch svc.kind {
	case kindDirect:
		return lists.DirectFirst
	case kindReject:
		return []string{model.Reject, model.Direct}
	default:
		return lists.Service
	}
}

func landingGroup(cls classify.Result, flags model.Flags, table *geodata.Table) model.Group {
	g := model.Group{
		Name: NameLanding,
		Type: model.GroupSelect,
		Icon: iconBase + "Airport.png",
	}
	if flags.RegexFilter {
		g.IncludeAll = true
		g.Filter = table.LandingSource()
		return g
	}
	if len(cls.LandingNames) == 0 {
		// The flag is on but the subscription has no landing nodes; keep
		// the group resolvable instead of emitting it empty.
		g.Proxies = []string{model.Direct}
		return g
	}
	g.Proxies = cls.LandingNames
	return g
}

func lowCostGroup(cls classify.Result, flags model.Flags, table *geodata.Table) model.Group {
	g := model.Group{
		Name: NameLowCost,
		Type: model.GroupURLTest,
		Icon: iconBase + "Lab.png",
	}
	if flags.RegexFilter {
		g.IncludeAll = true
		g.Filter = table.LowCostSource()
	} else {
		g.Proxies = cls.LowCostNames
	}
	g.HealthCheck = probe()
	return g
}

func without(names []string, drop ...string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		skip := false
		for _, d := range drop {
			if n == d {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, n)
		}
	}
	return out
}

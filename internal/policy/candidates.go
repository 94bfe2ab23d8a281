package policy

import "github.com/John-Robertt/policygen-go/internal/model"

// Lists are the four reusable candidate lists shared by the functional and
// service groups. Order inside each list is part of the contract: the rule
// engine presents candidates in this order.
type Lists struct {
	// Selector is the top-level "choose a route" list.
	Selector []string
	// Service is the default list for proxied services.
	Service []string
	// DirectFirst is the list for domestic-leaning services.
	DirectFirst []string
	// Fallback feeds the fallback group. It must never contain the
	// Selector name: Selector already lists Fallback, and a back-edge
	// would close a cycle.
	Fallback []string
}

// segment is one optional slice of a candidate list. concat keeps only the
// present segments, in argument order.
type segment struct {
	names   []string
	present bool
}

func one(name string, present bool) segment {
	return segment{names: []string{name}, present: present}
}

func all(names []string) segment {
	return segment{names: names, present: true}
}

func concat(segs ...segment) []string {
	n := 0
	for _, s := range segs {
		if s.present {
			n += len(s.names)
		}
	}
	out := make([]string, 0, n)
	for _, s := range segs {
		if s.present {
			out = append(out, s.names...)
		}
	}
	return out
}

// BuildLists derives the four lists from the surfaced country-group names.
//
// The low-cost entry is present when at least one low-cost node exists, or
// unconditionally in regex-filter mode: membership is then decided at
// evaluation time, so the group must exist either way. The landing entry
// follows the landing flag.
func BuildLists(countryGroups []string, flags model.Flags, hasLowCost bool) Lists {
	lowCost := hasLowCost || flags.RegexFilter
	return Lists{
		Selector: concat(
			one(NameFallback, true),
			one(NameLanding, flags.Landing),
			all(countryGroups),
			one(NameLowCost, lowCost),
			one(NameManual, true),
			one(model.Direct, true),
		),
		Service: concat(
			one(NameSelector, true),
			all(countryGroups),
			one(NameLowCost, lowCost),
			one(NameManual, true),
			one(model.Direct, true),
		),
		DirectFirst: concat(
			one(model.Direct, true),
			all(countryGroups),
			one(NameLowCost, lowCost),
			one(NameSelector, true),
			one(NameManual, true),
		),
		Fallback: concat(
			one(NameLanding, flags.Landing),
			all(countryGroups),
			one(NameLowCost, lowCost),
			one(NameManual, true),
			one(model.Direct, true),
		),
	}
}

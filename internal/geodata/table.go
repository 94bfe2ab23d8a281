package geodata

import (
	"fmt"
	"regexp"

	"github.com/John-Robertt/policygen-go/internal/model"
)

// Spec is the raw, uncompiled pattern table. Country declaration order is
// significant: it decides first-match classification and breaks weight ties.
type Spec struct {
	Countries []model.CountryMeta

	// LandingPattern claims landing (exit-chain) nodes before any other
	// classification happens.
	LandingPattern string
	// LowCostPattern claims low-rate/discount nodes after landing but
	// before country matching.
	LowCostPattern string
}

// Table is the compiled, immutable form of a Spec. It is threaded explicitly
// through every pipeline call; nothing reads pattern state from globals.
type Table struct {
	countries []model.CountryMeta
	patterns  []*regexp.Regexp

	landing *regexp.Regexp
	lowCost *regexp.Regexp

	landingSrc string
	lowCostSrc string

	byKey map[string]int
}

type TableError struct {
	AppError model.AppError
	Cause    error
}

func (e *TableError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *TableError) Unwrap() error { return e.Cause }

// Compile validates and compiles a Spec. A malformed pattern is a static
// configuration defect: callers are expected to fail fast at startup, not
// tolerate it per node.
func Compile(spec Spec) (*Table, error) {
	t := &Table{
		countries:  make([]model.CountryMeta, len(spec.Countries)),
		patterns:   make([]*regexp.Regexp, len(spec.Countries)),
		landingSrc: spec.LandingPattern,
		lowCostSrc: spec.LowCostPattern,
		byKey:      make(map[string]int, len(spec.Countries)),
	}
	copy(t.countries, spec.Countries)

	for i, cm := range t.countries {
		if cm.Key == "" {
			return nil, &TableError{
				AppError: model.AppError{
					Code:    "TABLE_COMPILE_ERROR",
					Message: fmt.Sprintf("国家表第 %d 项缺少 key", i+1),
					Stage:   "compile_table",
				},
			}
		}
		if _, dup := t.byKey[cm.Key]; dup {
			return nil, &TableError{
				AppError: model.AppError{
					Code:    "TABLE_COMPILE_ERROR",
					Message: fmt.Sprintf("国家 key 重复：%s", cm.Key),
					Stage:   "compile_table",
				},
			}
		}
		re, err := regexp.Compile(cm.Pattern)
		if err != nil {
			return nil, &TableError{
				AppError: model.AppError{
					Code:    "TABLE_COMPILE_ERROR",
					Message: fmt.Sprintf("国家正则编译失败：%s", cm.Key),
					Stage:   "compile_table",
					Snippet: cm.Pattern,
				},
				Cause: err,
			}
		}
		t.patterns[i] = re
		t.byKey[cm.Key] = i
	}

	var err error
	if t.landing, err = regexp.Compile(spec.LandingPattern); err != nil {
		return nil, &TableError{
			AppError: model.AppError{
				Code:    "TABLE_COMPILE_ERROR",
				Message: "落地正则编译失败",
				Stage:   "compile_table",
				Snippet: spec.LandingPattern,
			},
			Cause: err,
		}
	}
	if t.lowCost, err = regexp.Compile(spec.LowCostPattern); err != nil {
		return nil, &TableError{
			AppError: model.AppError{
				Code:    "TABLE_COMPILE_ERROR",
				Message: "省流正则编译失败",
				Stage:   "compile_table",
				Snippet: spec.LowCostPattern,
			},
			Cause: err,
		}
	}

	return t, nil
}

// Countries returns the table entries in declaration order. The slice is
// shared; callers must not mutate it.
func (t *Table) Countries() []model.CountryMeta { return t.countries }

// Meta looks up a country by bucket key.
func (t *Table) Meta(key string) (model.CountryMeta, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return model.CountryMeta{}, false
	}
	return t.countries[i], true
}

// Match tests the name against each country pattern in declaration order and
// returns the first matching key. A name matching several patterns belongs
// to the earliest declared country; that is the tie-break, not an error.
func (t *Table) Match(name string) (string, bool) {
	for i, re := range t.patterns {
		if re.MatchString(name) {
			return t.countries[i].Key, true
		}
	}
	return "", false
}

func (t *Table) MatchLanding(name string) bool { return t.landing.MatchString(name) }
func (t *Table) MatchLowCost(name string) bool { return t.lowCost.MatchString(name) }

// LandingSource and LowCostSource expose the raw pattern text for groups
// that re-apply the classifier's exclusions at evaluation time.
func (t *Table) LandingSource() string { return t.landingSrc }
func (t *Table) LowCostSource() string { return t.lowCostSrc }

// ExcludeSource is the low-cost pattern, unioned with the landing pattern
// when the landing feature is on, so runtime-filtered groups reproduce
// exactly what the classifier keeps out of country buckets.
func (t *Table) ExcludeSource(landing bool) string {
	if landing {
		return t.lowCostSrc + "|" + t.landingSrc
	}
	return t.lowCostSrc
}

package geodata

import (
	"errors"
	"strings"
	"testing"

	"github.com/John-Robertt/policygen-go/internal/model"
)

func TestDefault_Compiles(t *testing.T) {
	tbl := Default()
	if got := len(tbl.Countries()); got == 0 {
		t.Fatalf("builtin table is empty")
	}
	if key, ok := tbl.Match("香港 IEPL 01"); !ok || key != "HK" {
		t.Fatalf("Match(香港)=%q,%v, want HK,true", key, ok)
	}
	if key, ok := tbl.Match("JP-Tokyo-01"); !ok || key != "JP" {
		t.Fatalf("Match(JP-Tokyo-01)=%q,%v, want JP,true", key, ok)
	}
	if _, ok := tbl.Match("mystery-node"); ok {
		t.Fatalf("Match(mystery-node) matched, want no match")
	}
	if !tbl.MatchLanding("落地-US-01") {
		t.Fatalf("MatchLanding(落地-US-01)=false, want true")
	}
	if !tbl.MatchLowCost("省流|HK x0.1") {
		t.Fatalf("MatchLowCost(省流)=false, want true")
	}
}

func TestMatch_FirstDeclarationWins(t *testing.T) {
	tbl, err := Compile(Spec{
		Countries: []model.CountryMeta{
			{Key: "HK", GroupName: "香港节点", Pattern: `HK`},
			{Key: "US", GroupName: "美国节点", Pattern: `HK|US`},
		},
		LandingPattern: `落地`,
		LowCostPattern: `省流`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The name matches both patterns; declaration order decides.
	for i := 0; i < 5; i++ {
		key, ok := tbl.Match("HK-01")
		if !ok || key != "HK" {
			t.Fatalf("run %d: Match(HK-01)=%q,%v, want HK,true", i, key, ok)
		}
	}
}

func TestCompile_BadPattern(t *testing.T) {
	_, err := Compile(Spec{
		Countries: []model.CountryMeta{
			{Key: "HK", GroupName: "香港节点", Pattern: `(`},
		},
		LandingPattern: `落地`,
		LowCostPattern: `省流`,
	})
	var te *TableError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TableError, got %T: %v", err, err)
	}
	if te.AppError.Code != "TABLE_COMPILE_ERROR" {
		t.Fatalf("code=%q, want TABLE_COMPILE_ERROR", te.AppError.Code)
	}
}

func TestCompile_DuplicateKey(t *testing.T) {
	_, err := Compile(Spec{
		Countries: []model.CountryMeta{
			{Key: "HK", GroupName: "a", Pattern: `a`},
			{Key: "HK", GroupName: "b", Pattern: `b`},
		},
		LandingPattern: `落地`,
		LowCostPattern: `省流`,
	})
	if err == nil {
		t.Fatalf("expected error for duplicate key")
	}
}

func TestExcludeSource(t *testing.T) {
	tbl, err := Compile(Spec{
		Countries:      []model.CountryMeta{{Key: "HK", GroupName: "香港节点", Pattern: `HK`}},
		LandingPattern: `落地`,
		LowCostPattern: `省流`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tbl.ExcludeSource(false); got != "省流" {
		t.Fatalf("ExcludeSource(false)=%q, want 省流", got)
	}
	got := tbl.ExcludeSource(true)
	if !strings.Contains(got, "省流") || !strings.Contains(got, "落地") {
		t.Fatalf("ExcludeSource(true)=%q, want union of both patterns", got)
	}
}

package language

import (
	"testing"

	"github.com/mmp/marskit/mars"
	"github.com/mmp/marskit/mars/types"
)

func buildTestLanguage(t *testing.T, rules []ContextRule) *Language {
	t.Helper()
	lang, err := NewLanguage("retrieve", []KeywordDef{
		{Name: "levtype", Settings: types.Settings{Class: "enum", Values: []string{"sfc", "pl"}, DefaultVals: []string{"sfc"}}},
		{Name: "param", Settings: types.Settings{Class: "enum", Values: []string{"2t", "msl", "z"}}},
	}, nil, rules)
	if err != nil {
		t.Fatalf("unexpected error building language: %v", err)
	}
	return lang
}

func TestIncludeRuleRestrictsValues(t *testing.T) {
	rule := &Include{
		condition: condition{Keyword: "levtype", Values: []string{"pl"}},
		Target:    "param",
		Allowed:   []string{"z"},
	}
	lang := buildTestLanguage(t, []ContextRule{rule})

	req := mars.NewRequest("retrieve")
	req.SetValues("levtype", []string{"pl"}, nil)
	req.SetValues("param", []string{"2t", "z"}, nil)

	out, err := lang.Expand(req, true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vals, _ := out.Values("param", false)
	if len(vals) != 1 || vals[0] != "z" {
		t.Errorf("got %v, want [z]", vals)
	}
}

func TestExcludeRuleForbidsValues(t *testing.T) {
	rule := &Exclude{
		condition: condition{Keyword: "levtype", Values: []string{"sfc"}},
		Target:    "param",
		Forbidden: []string{"z"},
	}
	lang := buildTestLanguage(t, []ContextRule{rule})

	req := mars.NewRequest("retrieve")
	req.SetValues("levtype", []string{"sfc"}, nil)
	req.SetValues("param", []string{"2t", "z"}, nil)

	out, err := lang.Expand(req, true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vals, _ := out.Values("param", false)
	if len(vals) != 1 || vals[0] != "2t" {
		t.Errorf("got %v, want [2t]", vals)
	}
}

func TestDefRuleOverridesDefault(t *testing.T) {
	rule := &Def{
		condition: condition{Keyword: "param", Values: []string{"z"}},
		Target:    "levtype",
		Default:   []string{"pl"},
	}
	lang := buildTestLanguage(t, []ContextRule{rule})

	req := mars.NewRequest("retrieve")
	req.SetValues("param", []string{"z"}, nil)

	out, err := lang.Expand(req, true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vals, _ := out.Values("levtype", false)
	if len(vals) != 1 || vals[0] != "pl" {
		t.Errorf("got %v, want [pl]", vals)
	}
}

func TestUndefRuleRemovesDefault(t *testing.T) {
	rule := &Undef{
		condition: condition{Keyword: "param", Values: []string{"z"}},
		Target:    "levtype",
	}
	lang := buildTestLanguage(t, []ContextRule{rule})

	req := mars.NewRequest("retrieve")
	req.SetValues("param", []string{"z"}, nil)

	out, err := lang.Expand(req, true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Has("levtype") {
		t.Errorf("expected levtype to be absent, got %v", out)
	}
}

// Package recommend maps quiz answers to catalog perfumes.
//
// Answers are matched against enumerated rules. Each matching rule
// contributes one predicate over a fixed catalog column; the predicates are
// OR-combined and every pattern is a bound parameter.
package recommend

import (
	"strings"

	"gorm.io/gorm"
)

type Answers struct {
	Period     string `json:"period"`
	Event      string `json:"event"`
	Family     string `json:"family"`
	Intensity  string `json:"intensity"`
	Impression string `json:"impression"`
}

// Catalog columns a predicate may target.
const (
	ColumnOccasion = "p.occasion"
	ColumnSillage  = "p.sillage"
)

// Predicate matches rows whose column contains any of the patterns,
// case-insensitively.
type Predicate struct {
	Column   string
	Patterns []string
}

// SQL renders the predicate as a parenthesized OR group with one
// placeholder per pattern.
func (p Predicate) SQL() (string, []any) {
	parts := make([]string, 0, len(p.Patterns))
	args := make([]any, 0, len(p.Patterns))
	for _, pat := range p.Patterns {
		parts = append(parts, "LOWER("+p.Column+") LIKE ?")
		args = append(args, "%"+strings.ToLower(pat)+"%")
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

type Rule struct {
	Name      string
	Matches   func(Answers) bool
	Predicate Predicate
}

var (
	nightWords   = []string{"night", "noite"}
	specialWords = []string{"special", "especial"}
	markingWords = []string{"marking", "marcante", "long-lasting", "duradouro"}
	discreetWord = []string{"discreet", "discreto"}
)

// Rules are evaluated in order; the two sillage rules are exclusive.
var Rules = []Rule{
	{
		Name: "evening_or_special_occasion",
		Matches: func(a Answers) bool {
			return mentions(a.Period, nightWords...) || mentions(a.Event, specialWords...)
		},
		Predicate: Predicate{
			Column:   ColumnOccasion,
			Patterns: []string{"night", "noite", "special", "especial"},
		},
	},
	{
		Name: "strong_sillage",
		Matches: func(a Answers) bool {
			return mentions(a.Intensity, markingWords...)
		},
		Predicate: Predicate{
			Column:   ColumnSillage,
			Patterns: []string{"strong", "forte"},
		},
	},
	{
		Name: "soft_sillage",
		Matches: func(a Answers) bool {
			return !mentions(a.Intensity, markingWords...) && mentions(a.Intensity, discreetWord...)
		},
		Predicate: Predicate{
			Column:   ColumnSillage,
			Patterns: []string{"moderate", "moderado", "light", "leve"},
		},
	},
}

// Filter is the OR of the predicates of every matching rule. An empty
// filter places no restriction beyond the catalog's own.
type Filter struct {
	Rules      []string
	Predicates []Predicate
}

func BuildFilter(a Answers) Filter {
	var f Filter
	for _, r := range Rules {
		if r.Matches(a) {
			f.Rules = append(f.Rules, r.Name)
			f.Predicates = append(f.Predicates, r.Predicate)
		}
	}
	return f
}

func (f Filter) Empty() bool { return len(f.Predicates) == 0 }

// SQL renders the whole filter, or "" when it is empty.
func (f Filter) SQL() (string, []any) {
	if f.Empty() {
		return "", nil
	}
	parts := make([]string, 0, len(f.Predicates))
	var args []any
	for _, p := range f.Predicates {
		sql, a := p.SQL()
		parts = append(parts, sql)
		args = append(args, a...)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func (f Filter) Apply(q *gorm.DB) *gorm.DB {
	sql, args := f.SQL()
	if sql == "" {
		return q
	}
	return q.Where(sql, args...)
}

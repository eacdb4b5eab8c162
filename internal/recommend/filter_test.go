package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Noite":        "noite",
		"  ESPECIAL ":  "especial",
		"Coração":      "coracao",
		"Marcánte":     "marcante",
		"":             "",
		"long-lasting": "long-lasting",
	}
	for in, want := range cases {
		assert.Equal(t, want, Fold(in), in)
	}
}

func TestBuildFilter_NightAndDiscreet(t *testing.T) {
	f := BuildFilter(Answers{Period: "night", Event: "casual", Family: "woody", Intensity: "discreet", Impression: "elegant"})

	assert.Equal(t, []string{"evening_or_special_occasion", "soft_sillage"}, f.Rules)

	sql, args := f.SQL()
	assert.Equal(t,
		"((LOWER(p.occasion) LIKE ? OR LOWER(p.occasion) LIKE ? OR LOWER(p.occasion) LIKE ? OR LOWER(p.occasion) LIKE ?) OR "+
			"(LOWER(p.sillage) LIKE ? OR LOWER(p.sillage) LIKE ? OR LOWER(p.sillage) LIKE ? OR LOWER(p.sillage) LIKE ?))",
		sql)
	assert.Equal(t, []any{
		"%night%", "%noite%", "%special%", "%especial%",
		"%moderate%", "%moderado%", "%light%", "%leve%",
	}, args)
}

func TestBuildFilter_PortugueseAndAccents(t *testing.T) {
	f := BuildFilter(Answers{Period: "Tarde", Event: "Ocasião ESPECIAL", Intensity: "Marcante e duradouro"})
	assert.Equal(t, []string{"evening_or_special_occasion", "strong_sillage"}, f.Rules)
}

func TestBuildFilter_StrongWinsOverDiscreet(t *testing.T) {
	f := BuildFilter(Answers{Intensity: "discreto mas duradouro"})
	assert.Equal(t, []string{"strong_sillage"}, f.Rules)
}

func TestBuildFilter_NoRules(t *testing.T) {
	f := BuildFilter(Answers{Period: "morning", Event: "work", Family: "citrus", Intensity: "medium", Impression: "fresh"})
	assert.True(t, f.Empty())

	sql, args := f.SQL()
	assert.Empty(t, sql)
	assert.Empty(t, args)
}

func TestBuildFilter_AnswersNeverReachSQL(t *testing.T) {
	evil := "noite'); DROP TABLE perfumes; --"
	f := BuildFilter(Answers{Period: evil, Intensity: evil})

	require.False(t, f.Empty())
	sql, args := f.SQL()
	assert.NotContains(t, sql, "DROP")
	for _, a := range args {
		assert.NotContains(t, a, "DROP")
	}
}

package domains

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lakshmi0706/Mogrds/pkg/models"
)

func TestHostname(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"full url", "https://www.walmart.com/store/42", "walmart.com"},
		{"bare domain", "walmart.com", "walmart.com"},
		{"bare domain with www", "www.walmart.com", "walmart.com"},
		{"subdomain kept", "https://m.facebook.com/page", "m.facebook.com"},
		{"uppercase lowered", "HTTPS://WALMART.COM", "walmart.com"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"scheme only", "https://", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Hostname(tt.input))
		})
	}
}

func TestAnalyzerDenied(t *testing.T) {
	a := NewAnalyzer("denyme.io")

	assert.True(t, a.Denied("facebook.com"))
	assert.True(t, a.Denied("m.facebook.com"), "subdomains of denied domains are denied")
	assert.True(t, a.Denied("denyme.io"))
	assert.False(t, a.Denied("walmart.com"))
	assert.False(t, a.Denied("notfacebook.com"), "deny matching is per label, not substring")
	assert.False(t, a.Denied(""))
}

func TestFilterHosts(t *testing.T) {
	a := NewAnalyzer()

	hosts := a.FilterHosts([]string{
		"https://www.acme.com/about",
		"https://en.wikipedia.org/wiki/Acme",
		"not a url at all ://",
		"https://acme.com/shop",
	})

	assert.Equal(t, []string{"acme.com", "acme.com"}, hosts)
}

func TestAnalyze(t *testing.T) {
	t.Run("empty input is not found", func(t *testing.T) {
		domain, ok := Analyze(nil)
		assert.False(t, ok)
		assert.Equal(t, models.NotFound, domain)
	})

	t.Run("single distinct domain dominates", func(t *testing.T) {
		domain, ok := Analyze([]string{"acme.com", "acme.com"})
		assert.True(t, ok)
		assert.Equal(t, "acme.com", domain)
	})

	t.Run("single occurrence still dominates alone", func(t *testing.T) {
		domain, ok := Analyze([]string{"acme.com"})
		assert.True(t, ok)
		assert.Equal(t, "acme.com", domain)
	})

	t.Run("clear majority dominates", func(t *testing.T) {
		domain, ok := Analyze([]string{"acme.com", "other.com", "acme.com"})
		assert.True(t, ok)
		assert.Equal(t, "acme.com", domain)
	})

	t.Run("tie for first is not dominant", func(t *testing.T) {
		domain, ok := Analyze([]string{"acme.com", "other.com"})
		assert.False(t, ok)
		assert.Equal(t, "acme.com", domain, "first seen reported even without dominance")
	})

	t.Run("first seen wins among equal counts", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			domain, _ := Analyze([]string{"zeta.com", "alpha.com"})
			assert.Equal(t, "zeta.com", domain)
		}
	})
}

func TestShare(t *testing.T) {
	assert.Equal(t, 0.0, Share(nil, "acme.com"))
	assert.InDelta(t, 2.0/3.0, Share([]string{"acme.com", "other.com", "acme.com"}, "acme.com"), 1e-9)
	assert.Equal(t, 0.0, Share([]string{"other.com"}, "acme.com"))
}

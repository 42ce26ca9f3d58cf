// Package domains analyzes candidate domains extracted from search results.
// The matcher decides by textual similarity; this decides by frequency
// consensus, so the two live apart.
package domains

import (
	"net/url"
	"strings"

	"github.com/Lakshmi0706/Mogrds/pkg/models"
)

// DefaultDenyList holds non-authoritative domains that never identify a
// merchant's own site: social networks, marketplaces, encyclopedias, news
// outlets, review aggregators, stock-photo sites.
var DefaultDenyList = []string{
	"facebook.com", "instagram.com", "twitter.com", "x.com", "linkedin.com",
	"youtube.com", "tiktok.com", "pinterest.com", "reddit.com",
	"amazon.com", "ebay.com", "etsy.com", "alibaba.com",
	"wikipedia.org", "fandom.com",
	"reuters.com", "bloomberg.com", "nytimes.com", "forbes.com",
	"yelp.com", "tripadvisor.com", "glassdoor.com", "indeed.com",
	"shutterstock.com", "gettyimages.com", "istockphoto.com",
}

// Hostname extracts the hostname from a URL or bare domain, lowercased with
// any "www." prefix removed. Returns "" when nothing parseable is present.
func Hostname(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// Analyzer filters candidate domains through a deny-list and measures
// frequency consensus across them.
type Analyzer struct {
	deny map[string]struct{}
}

// NewAnalyzer creates an Analyzer with the default deny-list plus any extras.
func NewAnalyzer(extra ...string) *Analyzer {
	deny := make(map[string]struct{}, len(DefaultDenyList)+len(extra))
	for _, d := range DefaultDenyList {
		deny[strings.ToLower(d)] = struct{}{}
	}
	for _, d := range extra {
		if h := Hostname(d); h != "" {
			deny[h] = struct{}{}
		}
	}
	return &Analyzer{deny: deny}
}

// Denied reports whether the host, or any registrable parent of it, is on the
// deny-list (so "m.facebook.com" is denied by "facebook.com").
func (a *Analyzer) Denied(host string) bool {
	host = strings.ToLower(host)
	for host != "" {
		if _, ok := a.deny[host]; ok {
			return true
		}
		dot := strings.Index(host, ".")
		if dot < 0 {
			return false
		}
		host = host[dot+1:]
	}
	return false
}

// FilterHosts extracts hostnames from the given URLs and drops unparseable
// and deny-listed entries, preserving order.
func (a *Analyzer) FilterHosts(urls []string) []string {
	hosts := make([]string, 0, len(urls))
	for _, raw := range urls {
		host := Hostname(raw)
		if host == "" || a.Denied(host) {
			continue
		}
		hosts = append(hosts, host)
	}
	return hosts
}

// Analyze counts domain frequency and reports the most frequent domain and
// whether it dominates. Dominant means strictly more occurrences than the
// runner-up, or a single distinct domain. A tie for first place is not
// dominant. Empty input yields the not-found sentinel.
func Analyze(hosts []string) (string, bool) {
	if len(hosts) == 0 {
		return models.NotFound, false
	}

	counts := make(map[string]int, len(hosts))
	order := make([]string, 0, len(hosts))
	for _, host := range hosts {
		if counts[host] == 0 {
			order = append(order, host)
		}
		counts[host]++
	}

	if len(order) == 1 {
		return order[0], true
	}

	// First-seen wins among equal counts so the outcome is reproducible.
	top, second := "", 0
	best := 0
	for _, host := range order {
		c := counts[host]
		if c > best {
			second = best
			best = c
			top = host
		} else if c > second {
			second = c
		}
	}

	return top, best > second
}

// Share returns the fraction of hosts equal to the given domain. Used as the
// reported confidence for consensus-based decisions, which carry no
// similarity score of their own.
func Share(hosts []string, domain string) float64 {
	if len(hosts) == 0 {
		return 0
	}
	n := 0
	for _, host := range hosts {
		if host == domain {
			n++
		}
	}
	return float64(n) / float64(len(hosts))
}

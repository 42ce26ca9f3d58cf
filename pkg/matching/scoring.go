package matching

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/Lakshmi0706/Mogrds/pkg/domains"
)

// Signal weights. Character similarity dominates because OCR/typo noise
// changes characters, not word order. When a reference merchant carries a
// known domain and the query's tokens corroborate it, the domain-weighted
// blend can lift the score above the text signals alone: an official-site
// hit is the strongest evidence we get.
const (
	weightChar  = 0.6
	weightToken = 0.4

	weightCharWithDomain  = 0.3
	weightTokenWithDomain = 0.2
	weightDomain          = 0.5
)

// stopwords are excluded from the domain-token signal: they appear in most
// merchant names and would corroborate almost any hostname.
var stopwords = map[string]struct{}{
	"INC": {}, "CO": {}, "THE": {}, "LLC": {}, "LTD": {},
	"CORP": {}, "AND": {}, "OF": {},
}

// Scorer computes similarity between a normalized query and a normalized
// reference entity. Pure functions, no I/O.
type Scorer struct{}

// NewScorer creates a new Scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the composite similarity in [0,1] for one query/entity pair.
// Both inputs must already be normalized. entityDomain may be empty.
//
// Formula:
//
//	char    = max(levRatio(tokenSort(q), tokenSort(e)), partialRatio(collapse(q), collapse(e)))
//	token   = |{query tokens that are substrings of collapse(e)}| / |query tokens|
//	domain  = |{meaningful query tokens that are substrings of hostname}| / |meaningful tokens|
//	score   = max(0.6*char + 0.4*token, 0.3*char + 0.2*token + 0.5*domain)
//
// The domain blend only ever raises the score: a strong hostname hit can lift
// a weak textual match, but a partial one must never drag down an entity whose
// text already matches. Clipped to [0,1]. An empty query scores 0 against
// every entity.
func (s *Scorer) Score(queryNorm, entityNorm, entityDomain string) float64 {
	if queryNorm == "" || entityNorm == "" {
		return 0
	}

	char := s.CharSimilarity(queryNorm, entityNorm)
	token := s.TokenOverlap(queryNorm, entityNorm)

	score := weightChar*char + weightToken*token
	if entityDomain != "" {
		if domain := s.DomainTokenScore(queryNorm, entityDomain); domain > 0 {
			withDomain := weightCharWithDomain*char + weightTokenWithDomain*token + weightDomain*domain
			if withDomain > score {
				score = withDomain
			}
		}
	}

	return clip01(score)
}

// CharSimilarity is the character-level signal: the better of the token-sort
// ratio (robust to word reordering, the metric the matching key list was
// calibrated against) and the partial ratio on space-collapsed strings
// (robust to truncation and compound names like "WAL MART" vs "WALMART").
func (s *Scorer) CharSimilarity(a, b string) float64 {
	tokenSort := s.LevenshteinRatio(tokenSort(a), tokenSort(b))
	partial := s.PartialRatio(collapse(a), collapse(b))
	if partial > tokenSort {
		return partial
	}
	return tokenSort
}

// LevenshteinRatio is 1 - dist/maxLen, the normalized edit-distance
// similarity. The denominator counts runes, matching ComputeDistance.
func (s *Scorer) LevenshteinRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// PartialRatio slides the shorter string across every equal-length window of
// the longer and returns the best Levenshtein ratio. Equals 1.0 whenever one
// string contains the other.
func (s *Scorer) PartialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if strings.Contains(longer, shorter) {
		return 1.0
	}

	best := 0.0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		ratio := s.LevenshteinRatio(shorter, longer[i:i+len(shorter)])
		if ratio > best {
			best = ratio
		}
	}
	return best
}

// TokenOverlap is the fraction of the query's tokens that appear within the
// entity's collapsed text. Asymmetric on purpose: descriptors carry extra
// junk around the merchant name, so only the query side is penalized.
func (s *Scorer) TokenOverlap(query, entity string) float64 {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return 0
	}

	collapsed := collapse(entity)
	matched := 0
	for _, token := range tokens {
		if strings.Contains(collapsed, token) {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}

// DomainTokenScore is the fraction of meaningful query tokens (stopwords and
// single characters excluded) that appear as substrings of the entity's
// hostname.
func (s *Scorer) DomainTokenScore(query, domain string) float64 {
	host := domains.Hostname(domain)
	if host == "" {
		return 0
	}
	host = strings.ToUpper(host)

	meaningful := 0
	matched := 0
	for _, token := range strings.Fields(query) {
		if len(token) < 2 {
			continue
		}
		if _, ok := stopwords[token]; ok {
			continue
		}
		meaningful++
		if strings.Contains(host, token) {
			matched++
		}
	}

	if meaningful == 0 {
		return 0
	}
	return float64(matched) / float64(meaningful)
}

// tokenSort rejoins a string's tokens in sorted order so word reordering is free.
func tokenSort(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// collapse removes all spaces.
func collapse(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

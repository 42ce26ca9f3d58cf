// Package normalizers provides string normalization for merchant matching
package normalizers

import (
	"strings"
	"unicode"
)

// Normalizer is a function that normalizes a string value
type Normalizer func(string) string

// registry holds all registered normalizers
var registry = make(map[string]Normalizer)

func init() {
	Register("lowercase", Lowercase)
	Register("uppercase", Uppercase)
	Register("trim", Trim)
	Register("remove_whitespace", RemoveWhitespace)
	Register("remove_punctuation", RemovePunctuation)
	Register("alphanumeric", Alphanumeric)
	Register("digits_only", DigitsOnly)
	Register("merchant", Clean)
}

// Register adds a normalizer to the registry
func Register(name string, fn Normalizer) {
	registry[name] = fn
}

// Get retrieves a normalizer by name
func Get(name string) (Normalizer, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Apply applies a named normalizer to a value
func Apply(value, normalizer string) string {
	fn, ok := registry[normalizer]
	if !ok {
		return value
	}
	return fn(value)
}

// ApplyChain applies multiple normalizers in sequence
func ApplyChain(value string, normalizers ...string) string {
	result := value
	for _, name := range normalizers {
		result = Apply(result, name)
	}
	return result
}

// DefaultNoiseTokens are transactional markers and vendor-suffix words that
// carry no identity signal in card descriptors. Matched as whole words only.
var DefaultNoiseTokens = []string{
	"INSTORE", "ONLINE", "PICKUP", "PURCHASE", "PAYMENT", "RECURRING",
	"POS", "DEBIT", "CREDIT", "WWW",
	"INC", "LLC", "LTD", "CORP",
}

// Clean canonicalizes raw merchant text for comparison:
// uppercase, keep only letters/digits/spaces, collapse whitespace, trim.
// Deterministic, total, and idempotent: Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	var result strings.Builder
	prevSpace := true // trims leading space
	for _, r := range strings.ToUpper(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r):
			if !prevSpace {
				result.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	return strings.TrimSpace(result.String())
}

// CleanWithNoise runs Clean, then removes noise tokens and pure-digit tokens
// (store numbers, terminal ids) in a second pass so noise removal never
// interferes with the character-class cleanup. Idempotent like Clean.
func CleanWithNoise(s string, noise []string) string {
	cleaned := Clean(s)
	if cleaned == "" {
		return cleaned
	}

	noiseSet := make(map[string]struct{}, len(noise))
	for _, token := range noise {
		noiseSet[Clean(token)] = struct{}{}
	}

	tokens := strings.Fields(cleaned)
	kept := tokens[:0]
	for _, token := range tokens {
		if _, ok := noiseSet[token]; ok {
			continue
		}
		if isDigits(token) {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// Built-in normalizers

// Lowercase converts string to lowercase
func Lowercase(s string) string {
	return strings.ToLower(s)
}

// Uppercase converts string to uppercase
func Uppercase(s string) string {
	return strings.ToUpper(s)
}

// Trim removes leading and trailing whitespace
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// RemoveWhitespace removes all whitespace characters
func RemoveWhitespace(s string) string {
	var result strings.Builder
	for _, r := range s {
		if !unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// RemovePunctuation removes all punctuation characters
func RemovePunctuation(s string) string {
	var result strings.Builder
	for _, r := range s {
		if !unicode.IsPunct(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// Alphanumeric keeps only alphanumeric characters
func Alphanumeric(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// DigitsOnly keeps only digit characters
func DigitsOnly(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

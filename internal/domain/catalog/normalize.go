// Package catalog contains the pure data-shaping core of the
// storefront: category name normalization and matching, and the
// transformation of heterogeneous upstream product records into the
// display-ready shape served to clients.
package catalog

import (
	"slices"
	"strings"
	"unicode"
)

// NormalizeName produces the canonical comparable form of a category
// name: trimmed, camelCase split on capitals, lowercased, hyphens
// converted to spaces, whitespace collapsed. Applying it to an already
// normalized name is a no-op.
//
// Category names arrive inconsistently (slug vs. title vs. display
// name) depending on which upstream endpoint produced them, so every
// comparison goes through this canonical form.
func NormalizeName(raw string) string {
	s := strings.TrimSpace(raw)

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	s = strings.ToLower(b.String())
	s = strings.ReplaceAll(s, "-", " ")

	return strings.Join(strings.Fields(s), " ")
}

// NamesMatch reports whether two category names refer to the same
// category. Matching is tiered:
//
//  1. canonical forms are identical;
//  2. every word of one appears in the other and vice versa;
//  3. one side is a single word contained in the other's word set.
//
// Strict equality alone would miss legitimate matches between slugs and
// titles, so the word-set tiers act as a controlled fallback. Tier 3
// can produce false positives for single-word categories (a category
// literally named "Pump" matches any multi-word name containing
// "pump"); upstream behavior is preserved as-is.
func NamesMatch(a, b string) bool {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	wordsA := strings.Fields(na)
	wordsB := strings.Fields(nb)

	if containsAllWords(wordsA, wordsB) && containsAllWords(wordsB, wordsA) {
		return true
	}

	if len(wordsA) == 1 && slices.Contains(wordsB, wordsA[0]) {
		return true
	}
	if len(wordsB) == 1 && slices.Contains(wordsA, wordsB[0]) {
		return true
	}

	return false
}

// DisplayTitle renders a raw category name for display: a space is
// inserted before each capital letter, whitespace is collapsed, and
// each word gets a capitalized first letter.
func DisplayTitle(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	words := strings.Fields(b.String())
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}

// containsAllWords reports whether every word of want appears in have.
func containsAllWords(want, have []string) bool {
	for _, w := range want {
		if !slices.Contains(have, w) {
			return false
		}
	}

	return true
}

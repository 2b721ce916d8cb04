package screening

import (
	"regexp"
	"strings"
	"unicode"
)

// namePattern is the gate-level character class. Letters, whitespace, hyphen,
// apostrophe and period cover legitimate international names ("Anamika
// Sharma", "O'Brien", "Jean-Luc", "J. Smith").
var namePattern = regexp.MustCompile(`^[a-zA-Z\s'.-]+$`)

// placeholderNames are obviously fabricated identities, matched exactly and
// case-insensitively after trimming.
var placeholderNames = map[string]struct{}{
	"TEST USER": {},
	"TEST TEST": {},
	"JOHN DOE":  {},
	"JANE DOE":  {},
	"ADMIN":     {},
	"USER":      {},
	"NULL":      {},
	"UNDEFINED": {},
	"EXAMPLE":   {},
}

// nameInvalid is the pass/fail gate for the name field: blank, too short,
// disallowed characters, a run of 4+ identical characters, or a placeholder
// name. The softer heuristics below feed the feature vector and defect
// labeling but never this gate.
func nameInvalid(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 {
		return true
	}
	if !namePattern.MatchString(trimmed) {
		return true
	}
	if hasRepeatedRun(trimmed, 4) {
		return true
	}
	_, placeholder := placeholderNames[strings.ToUpper(trimmed)]
	return placeholder
}

// nameSpecialSymbolCount counts characters outside letters, space, hyphen and
// apostrophe. Stricter than the gate: a period counts as a special symbol here.
func nameSpecialSymbolCount(name string) int {
	count := 0
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' {
			count++
		}
	}
	return count
}

func nameHasSpecialSymbols(name string) bool {
	return nameSpecialSymbolCount(name) > 0
}

// nameHasInternalCapital reports an upper-case letter anywhere past the first
// character. Ordinary multi-word names trip this, which is why it is a
// feature-vector signal rather than a gate.
func nameHasInternalCapital(name string) bool {
	for i, r := range []rune(name) {
		if i > 0 && unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// hasRepeatedRun reports a run of n or more identical consecutive runes.
// RE2 has no backreferences, so the (.)\1{n-1} idiom is spelled out as a scan.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= n {
			return true
		}
	}
	return false
}

// nameHasRepeatedWords reports any whole word appearing twice, e.g. "John John".
func nameHasRepeatedWords(name string) bool {
	words := strings.Fields(name)
	if len(words) < 2 {
		return false
	}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			return true
		}
		seen[w] = struct{}{}
	}
	return false
}

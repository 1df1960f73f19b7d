package errors

import (
	"fmt"
	"strings"
)

// SuggestName returns the closest candidate to unknown, or "" when nothing
// is within a few edits.
func SuggestName(unknown string, candidates []string) string {
	if len(candidates) == 0 || unknown == "" {
		return ""
	}

	// Allowed edits grow with the length of the name.
	limit := len(unknown)/3 + 1
	if limit > 3 {
		limit = 3
	}

	minDistance := limit + 1
	var bestMatch string

	for _, c := range candidates {
		if c == unknown {
			continue
		}
		dist := levenshteinDistance(unknown, c)
		if dist < minDistance {
			minDistance = dist
			bestMatch = c
		}
	}

	return bestMatch
}

// DidYouMean formats a suggestion for unknown, or returns "".
func DidYouMean(unknown string, candidates []string) string {
	if match := SuggestName(unknown, candidates); match != "" {
		return fmt.Sprintf("did you mean '%s'?", match)
	}
	return ""
}

// SuggestKeyword suggests a command or builtin for a misspelt word.
func SuggestKeyword(unknown string, keywords []string) string {
	if s := DidYouMean(unknown, keywords); s != "" {
		return s
	}
	if len(keywords) > 6 {
		return fmt.Sprintf("valid commands include: %s, ...", strings.Join(keywords[:6], ", "))
	}
	return fmt.Sprintf("valid commands: %s", strings.Join(keywords, ", "))
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}

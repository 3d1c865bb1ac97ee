package ui

import (
	"sort"
	"strings"
)

// maxSuggestDistance is the largest edit distance still offered as a
// suggestion
const maxSuggestDistance = 3

// Suggest returns up to limit candidates close to target, closest first and
// by name on ties. Matching ignores case.
//
//	Suggest("Adress", []string{"Address", "Person"}, 3) // ["Address"]
func Suggest(target string, candidates []string, limit int) []string {
	type match struct {
		name     string
		distance int
	}

	lower := strings.ToLower(target)
	var matches []match
	for _, candidate := range candidates {
		if d := editDistance(lower, strings.ToLower(candidate)); d <= maxSuggestDistance {
			matches = append(matches, match{candidate, d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})

	result := make([]string, 0, min(limit, len(matches)))
	for i := 0; i < len(matches) && i < limit; i++ {
		result = append(result, matches[i].name)
	}
	return result
}

// editDistance is the Levenshtein distance over bytes, computed with two
// rolling rows
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

package match

import (
	"sort"
)

// Candidate is a known name scored against a requested one.
type Candidate struct {
	Name  string
	Score float64 // normalized name similarity (0-1)
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// DefaultMinScore is the similarity a candidate needs to be suggested.
const DefaultMinScore = 0.5

// RankCandidates scores every known name against requested and returns the
// candidates sorted by score, best first.
func RankCandidates(requested string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))
	for _, name := range known {
		candidates = append(candidates, Candidate{
			Name:  name,
			Score: NameSimilarity(requested, name),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns at most n known names that are likely meant by requested.
func Suggest(requested string, known []string, n int) []string {
	ranked := RankCandidates(requested, known).AboveThreshold(DefaultMinScore).Top(n)

	names := make([]string, 0, len(ranked))
	for _, c := range ranked {
		names = append(names, c.Name)
	}

	return names
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// AboveThreshold returns candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

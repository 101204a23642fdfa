package domain

import (
	"math"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier name words are better)
	ScorePositionBonus = 10.0

	// Exact full-name match bonus (huge boost)
	ScoreExactNameBonus = 200.0

	// Tag match score (per matched tag filter)
	ScoreTagMatch = 80.0

	// Desc matches are weaker than name matches
	ScoreDescWeight = 0.3

	// View weight (view counter contributes to final score)
	ScoreViewWeight = 0.1
)

// Candidate represents an entry candidate with its match score.
type Candidate struct {
	Entry        *Entry
	Kind         Kind
	LexicalScore float64 // Score from fuzzy matching
	ViewScore    float64 // Score from view learning
	TotalScore   float64 // Combined score
}

// Score calculates the match score for an entry against a query.
// Tag filters are hard requirements: an entry missing a requested tag
// scores zero regardless of how well its name matches.
func Score(query *Query, entry *Entry) float64 {
	if query == nil || entry == nil || query.IsEmpty() {
		return 0.0
	}

	for _, tag := range query.Tags {
		if !hasTag(entry, tag) {
			return 0.0
		}
	}

	var total float64
	total += float64(len(query.Tags)) * ScoreTagMatch

	if len(query.Fragments) == 0 {
		return total
	}

	nameFrags := NameFragments(entry.Name)
	lexical := 0.0
	for _, qFrag := range query.Fragments {
		best := 0.0
		for i, nFrag := range nameFrags {
			if s := scoreFragment(qFrag, nFrag, i); s > best {
				best = s
			}
		}
		// Fall back to the description when the name gives nothing.
		if best == 0.0 && entry.Desc != "" {
			if strings.Contains(strings.ToLower(entry.Desc), qFrag) {
				best = ScoreSubstringMatch * ScoreDescWeight
			}
		}
		lexical += best
	}

	// All text fragments missed: tag-only matches still stand, but a
	// fragment query with no lexical hit is not a match.
	if lexical == 0.0 {
		return 0.0
	}

	// Exact whole-name match gets the big boost.
	if len(query.Fragments) == 1 && query.Fragments[0] == strings.ToLower(entry.Name) {
		lexical += ScoreExactNameBonus
	}

	return total + lexical
}

// scoreFragment scores a single query fragment against a name fragment.
func scoreFragment(queryFrag, nameFrag string, position int) float64 {
	if queryFrag == "" || nameFrag == "" {
		return 0.0
	}

	// Exact match
	if queryFrag == nameFrag {
		return ScoreExactMatch + calculatePositionBonus(position)
	}

	// Prefix match
	if strings.HasPrefix(nameFrag, queryFrag) {
		return ScorePrefixMatch + calculatePositionBonus(position)
	}

	// Substring match
	if strings.Contains(nameFrag, queryFrag) {
		index := strings.Index(nameFrag, queryFrag)
		// Earlier substring matches get higher score
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(nameFrag)))
		return ScoreSubstringMatch + substringBonus
	}

	// Fuzzy match
	similarity := calculateSimilarity(queryFrag, nameFrag)
	if similarity > 0.5 {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// calculatePositionBonus gives bonus for earlier name words.
func calculatePositionBonus(position int) float64 {
	return ScorePositionBonus * math.Exp(-float64(position)*0.3)
}

// calculateSimilarity calculates fuzzy similarity between two strings.
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	// Simple similarity: ratio of matching characters
	matches := 0
	for _, c := range s1 {
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}

	return float64(matches) / float64(len([]rune(s1)))
}

func hasTag(entry *Entry, tag string) bool {
	for _, t := range entry.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// RankEntries ranks entry candidates by combining lexical and view scores.
func RankEntries(query *Query, kind Kind, entries []*Entry) []*Candidate {
	candidates := make([]*Candidate, 0, len(entries))

	for _, entry := range entries {
		lexicalScore := Score(query, entry)
		if lexicalScore == 0.0 {
			continue
		}

		// View score is logarithmic to prevent dominance.
		viewScore := 0.0
		if entry.Views > 0 {
			viewScore = math.Log10(float64(entry.Views)+1) * ScoreViewWeight * 100
		}

		candidates = append(candidates, &Candidate{
			Entry:        entry,
			Kind:         kind,
			LexicalScore: lexicalScore,
			ViewScore:    viewScore,
			TotalScore:   lexicalScore + viewScore,
		})
	}

	sortCandidates(candidates)

	return candidates
}

// MergeCandidates merges per-collection rankings into one sorted list.
func MergeCandidates(lists ...[]*Candidate) []*Candidate {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	merged := make([]*Candidate, 0, total)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	sortCandidates(merged)
	return merged
}

// sortCandidates sorts candidates by total score (descending).
func sortCandidates(candidates []*Candidate) {
	// Simple bubble sort (fine for small lists)
	n := len(candidates)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if candidates[j].TotalScore < candidates[j+1].TotalScore {
				candidates[j], candidates[j+1] = candidates[j+1], candidates[j]
			}
		}
	}
}

package segment

// MatchResult holds the winning candidate per section key.
type MatchResult map[string]Candidate

// better orders candidates for one key: higher score first, then earlier
// document position.
func better(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Position < b.Position
}

// SelectBest reduces each candidate group to its best member.
func SelectBest(groups map[string][]Candidate) MatchResult {
	result := make(MatchResult, len(groups))
	for key, cands := range groups {
		if len(cands) == 0 {
			continue
		}
		best := cands[0]
		for _, c := range cands[1:] {
			if better(c, best) {
				best = c
			}
		}
		result[key] = best
	}
	return result
}

// Ordered returns the winners in catalog order, skipping absent keys.
func (m MatchResult) Ordered(c *Catalog) []Candidate {
	out := make([]Candidate, 0, len(m))
	for _, key := range c.Keys() {
		if cand, ok := m[key]; ok {
			out = append(out, cand)
		}
	}
	return out
}

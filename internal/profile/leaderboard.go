package profile

import (
	"fmt"
	"sort"
	"strings"
)

// MaxScores is the number of entries kept per leaderboard.
const MaxScores = 10

// Leaderboard is a bounded set of distinct positive scores kept in
// ascending order. When full, a new score evicts the lowest one.
type Leaderboard struct {
	scores []int
}

// NewLeaderboard builds a leaderboard from arbitrary scores. Zero and
// negative values are dropped, duplicates collapse and only the best
// MaxScores survive.
func NewLeaderboard(scores ...int) *Leaderboard {
	lb := &Leaderboard{}
	for _, s := range scores {
		lb.Add(s)
	}
	return lb
}

// Add inserts score and reports whether it was stored.
func (lb *Leaderboard) Add(score int) bool {
	if score <= 0 {
		return false
	}
	i := sort.SearchInts(lb.scores, score)
	if i < len(lb.scores) && lb.scores[i] == score {
		return false
	}
	if len(lb.scores) >= MaxScores {
		if score <= lb.scores[0] {
			return false
		}
		// Evict the lowest
		lb.scores = lb.scores[1:]
		i--
	}
	lb.scores = append(lb.scores, 0)
	copy(lb.scores[i+1:], lb.scores[i:])
	lb.scores[i] = score
	return true
}

// Scores returns a copy of the scores in ascending order.
func (lb *Leaderboard) Scores() []int {
	out := make([]int, len(lb.scores))
	copy(out, lb.scores)
	return out
}

// Ranked returns the scores from best to worst.
func (lb *Leaderboard) Ranked() []int {
	out := make([]int, len(lb.scores))
	for i, s := range lb.scores {
		out[len(out)-1-i] = s
	}
	return out
}

// Best returns the highest score, 0 when empty.
func (lb *Leaderboard) Best() int {
	if len(lb.scores) == 0 {
		return 0
	}
	return lb.scores[len(lb.scores)-1]
}

// Len returns the number of stored scores.
func (lb *Leaderboard) Len() int {
	return len(lb.scores)
}

// Empty reports whether no score is stored.
func (lb *Leaderboard) Empty() bool {
	return len(lb.scores) == 0
}

// Clear removes every score.
func (lb *Leaderboard) Clear() {
	lb.scores = lb.scores[:0]
}

// String renders the leaderboard one ranked entry per line.
func (lb *Leaderboard) String() string {
	var b strings.Builder
	for i, s := range lb.Ranked() {
		fmt.Fprintf(&b, "%2d. %d\n", i+1, s)
	}
	return b.String()
}

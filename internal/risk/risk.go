// Package risk provides the placeholder risk scorer. Real scoring lives in
// an upstream decision service; this stub only has to be deterministic so
// the API contract can be exercised end to end.
package risk

import "hash/fnv"

// Score bounds, matching the conventional consumer credit score range.
const (
	minScore = 300
	maxScore = 850
)

// Assessment is the result of scoring one customer.
type Assessment struct {
	CustomerID string `json:"customerId"`
	Score      int    `json:"score"`
	Band       string `json:"band"`
}

// Evaluate returns a deterministic placeholder assessment for customerID.
// The same id always yields the same score.
func Evaluate(customerID string) Assessment {
	h := fnv.New32a()
	_, _ = h.Write([]byte(customerID))
	score := minScore + int(h.Sum32()%uint32(maxScore-minScore+1))
	return Assessment{
		CustomerID: customerID,
		Score:      score,
		Band:       band(score),
	}
}

func band(score int) string {
	switch {
	case score >= 740:
		return "excellent"
	case score >= 670:
		return "good"
	case score >= 580:
		return "fair"
	default:
		return "poor"
	}
}

package similarity

import "context"

// Candidate is a source excerpt competing to be credited for a response.
type Candidate struct {
	TafsirId    string
	ScholarId   string
	ScholarName string
	Text        string
}

// Attribution credits the candidate most similar to the generated response.
type Attribution struct {
	TafsirId    string
	ScholarId   string
	ScholarName string
	Score       float64
}

// AttributeResponse finds the candidate whose text scores highest against the
// response. Candidates that fail to score are skipped. Returns nil when there
// are no candidates or no candidate scores above zero. Ties keep the earlier
// candidate.
func AttributeResponse(ctx context.Context, scorer Scorer, response string, candidates []Candidate) *Attribution {
	best := Attribution{}
	for _, c := range candidates {
		score, err := scorer.Score(ctx, response, c.Text)
		if err != nil {
			continue
		}
		if score > best.Score {
			best = Attribution{
				TafsirId:    c.TafsirId,
				ScholarId:   c.ScholarId,
				ScholarName: c.ScholarName,
				Score:       score,
			}
		}
	}
	if best.Score <= 0 {
		return nil
	}
	return &best
}

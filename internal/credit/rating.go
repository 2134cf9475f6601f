package credit

// Rating labels, best to worst.
const (
	RatingExceptional = "Exceptional"
	RatingExcellent   = "Excellent"
	RatingGood        = "Good"
	RatingFair        = "Fair"
	RatingPoor        = "Poor"
)

// RatingBand maps a minimum score to a rating label
type RatingBand struct {
	Min   int
	Label string
}

// DefaultRatingBands returns the standard band table, ordered best to
// worst. The default score of 600 lands in the Good band.
func DefaultRatingBands() []RatingBand {
	return []RatingBand{
		{Min: 800, Label: RatingExceptional},
		{Min: 700, Label: RatingExcellent},
		{Min: 600, Label: RatingGood},
		{Min: 500, Label: RatingFair},
		{Min: 0, Label: RatingPoor},
	}
}

// Rating maps a numeric score onto this scorer's band table.
func (s *Scorer) Rating(score int) string {
	for _, band := range s.bands {
		if score >= band.Min {
			return band.Label
		}
	}
	return RatingPoor
}

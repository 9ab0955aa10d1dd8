package scorer

import "strings"

// Recommendation is the action guidance attached to a score band.
type Recommendation struct {
	Rating        string `json:"rating"`
	Hold          string `json:"hold"`
	NewInvestment string `json:"new_investment"`
	AlertLevel    string `json:"alert_level"`
}

// band couples the score cutoffs to their published wording. Ordered by
// ascending cutoff; the last entry catches everything above 80.
type band struct {
	cutoff         float64
	grade          string
	riskLevel      string
	interpretation string
	rec            Recommendation
}

var bands = []band{
	{20, "A", "Very Low Risk", "Strong financial health, solid fundamentals",
		Recommendation{"Strong Buy", "Yes", "Consider", "Quarterly"}},
	{35, "B", "Low Risk", "Generally healthy, minor concerns",
		Recommendation{"Buy", "Yes", "Maybe", "Quarterly"}},
	{50, "C", "Moderate Risk", "Warning signs present, operational challenges",
		Recommendation{"Hold", "Review", "Avoid", "Monthly"}},
	{65, "D", "High Risk", "Significant distress, deteriorating conditions",
		Recommendation{"Sell", "Consider exit", "No", "Weekly"}},
	{80, "E", "Very High Risk", "Severe financial distress, restructuring likely",
		Recommendation{"Strong Sell", "Exit", "No", "Daily"}},
	{0, "F", "Critical Risk", "Bankruptcy candidate, survival in question",
		Recommendation{"Immediate Exit", "Immediate exit", "Never", "Constant"}},
}

func lookupBand(score float64) band {
	for _, b := range bands[:len(bands)-1] {
		if score <= b.cutoff {
			return b
		}
	}
	return bands[len(bands)-1]
}

// Interpret maps a composite score to its grade, risk level, and wording.
func Interpret(score float64) (grade, riskLevel, interpretation string) {
	b := lookupBand(score)
	return b.grade, b.riskLevel, b.interpretation
}

// Recommend maps a composite score to its action guidance.
func Recommend(score float64) Recommendation {
	return lookupBand(score).rec
}

// HoldPosition reports whether the hold advice permits keeping an existing
// position.
func (r Recommendation) HoldPosition() bool {
	switch strings.ToLower(r.Hold) {
	case "yes", "review":
		return true
	default:
		return false
	}
}

// ConsiderNewInvestment reports whether the guidance leaves room for new money.
func (r Recommendation) ConsiderNewInvestment() bool {
	switch strings.ToLower(r.NewInvestment) {
	case "consider", "maybe":
		return true
	default:
		return false
	}
}

package models

import (
	"fmt"
	"math"
)

// AHPConfig holds the criteria weights of the AHP synthesis formula,
// normally derived offline from a pairwise comparison matrix.
type AHPConfig struct {
	WFoundation float64 `json:"w_foundation" example:"0.3"`
	WCompetency float64 `json:"w_competency" example:"0.5"`
	WDensity    float64 `json:"w_density" example:"0.2"`
}

// Validate enforces the construction invariant: non-negative weights that
// sum to 1.0 within 1e-5 relative tolerance. Float sums are never compared
// with == because 0.1+0.2 != 0.3 in binary floating point.
func (c AHPConfig) Validate() error {
	if c.WFoundation < 0 || c.WCompetency < 0 || c.WDensity < 0 {
		return &ConfigurationError{Reason: fmt.Sprintf(
			"AHP weights must be non-negative (F=%v, C=%v, D=%v)",
			c.WFoundation, c.WCompetency, c.WDensity)}
	}
	total := c.WFoundation + c.WCompetency + c.WDensity
	if math.Abs(total-1.0) > 1e-5*math.Max(math.Abs(total), 1.0) {
		return &ConfigurationError{Reason: fmt.Sprintf(
			"AHP weights must sum to 1.0, got %.4f (F=%v, C=%v, D=%v)",
			total, c.WFoundation, c.WCompetency, c.WDensity)}
	}
	return nil
}

// AHPScoreset is the mathematical breakdown behind one profile's score.
// All components are in [0,1]; FoundationDensity is diagnostic only and
// does not enter the final formula.
type AHPScoreset struct {
	FoundationScore   float64 `json:"foundation_score" example:"0.85"`
	CompetencyScore   float64 `json:"competency_score" example:"0.9"`
	DensityScore      float64 `json:"density_score" example:"0.25"`
	FinalAHPScore     float64 `json:"final_ahp_score" example:"0.575"`
	FoundationDensity float64 `json:"foundation_density" example:"1.0"`
}

// ProfileRecommendation is the ranked verdict for one specialization track.
type ProfileRecommendation struct {
	Profile     ProfileType `json:"profile" example:"AI"`
	Rank        int         `json:"rank" example:"1"`
	Score       float64     `json:"score" example:"0.575"`
	Details     AHPScoreset `json:"details"`
	Explanation string      `json:"explanation"`
}

// StudentMetadata echoes the transcript header back to the caller. Every
// field is nullable because extraction of each one is best-effort.
type StudentMetadata struct {
	Name *string  `json:"name"`
	ID   *string  `json:"id"`
	GPA  *float64 `json:"gpa"`
}

// AnalysisResponse is the full profiling result for one transcript.
type AnalysisResponse struct {
	Status          string                  `json:"status" example:"success"`
	StudentMetadata StudentMetadata         `json:"student_metadata"`
	TotalCredits    int                     `json:"total_credits" example:"98"`
	Recommendations []ProfileRecommendation `json:"recommendations"`
}

package services

import (
	"fmt"
	"sort"

	"ahp_profiler/logger"
	"ahp_profiler/models"
	"ahp_profiler/utils"
)

// AHPService is the inference engine. It performs absolute AHP (ratings
// mode): each profile is scored independently against the weighted
// criteria instead of being pairwise-compared with the other profiles.
type AHPService struct {
	kb *KnowledgeBase
}

// NewAHPService wires the engine to its knowledge base.
func NewAHPService(kb *KnowledgeBase) *AHPService {
	return &AHPService{kb: kb}
}

// evidence is the per-course fact the engine needs for O(1) lookups.
type evidence struct {
	grade float64
	sks   int
}

// Analyze synthesizes a weighted multi-criteria score for every profile
// and returns ranked, explained recommendations. The weight configuration
// is validated before any evidence or knowledge base data is touched.
func (s *AHPService) Analyze(transcript *models.StudentTranscript, cfg models.AHPConfig) (*models.AnalysisResponse, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("starting AHP analysis",
		"student", strOrEmpty(transcript.StudentName),
		"courses", len(transcript.Courses))

	history := make(map[string]evidence, len(transcript.Courses))
	totalCredits := 0
	for _, c := range transcript.Courses {
		history[utils.NormalizeCourseCode(c.Code)] = evidence{grade: c.GradeValue, sks: c.SKS}
		totalCredits += c.SKS
	}

	// Scored with full precision; rounding happens once at the output
	// boundary below.
	type scored struct {
		profile           models.ProfileType
		foundationQuality float64
		competencyQuality float64
		competencyDensity float64
		foundationDensity float64
		final             float64
	}

	entries := make([]scored, 0, len(models.AllProfiles))
	for _, profile := range models.AllProfiles {
		e := scored{
			profile:           profile,
			foundationQuality: s.qualityScore(profile, models.CriteriaFoundation, history),
			competencyQuality: s.qualityScore(profile, models.CriteriaCompetency, history),
			competencyDensity: s.densityScore(profile, models.CriteriaCompetency, history),
			// Reported for diagnosis only, not part of the formula: a
			// senior student's foundation density is nearly always 1.0
			// and would flatten the ranking.
			foundationDensity: s.densityScore(profile, models.CriteriaFoundation, history),
		}
		e.final = e.foundationQuality*cfg.WFoundation +
			e.competencyQuality*cfg.WCompetency +
			e.competencyDensity*cfg.WDensity
		entries = append(entries, e)
	}

	// Stable sort: equal scores keep the fixed AI, DMS, PSD, INFRA order.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].final > entries[j].final })

	recommendations := make([]models.ProfileRecommendation, 0, len(entries))
	for i, e := range entries {
		recommendations = append(recommendations, models.ProfileRecommendation{
			Profile: e.profile,
			Rank:    i + 1,
			Score:   utils.Round4(e.final),
			Details: models.AHPScoreset{
				FoundationScore:   utils.Round4(e.foundationQuality),
				CompetencyScore:   utils.Round4(e.competencyQuality),
				DensityScore:      utils.Round4(e.competencyDensity),
				FinalAHPScore:     utils.Round4(e.final),
				FoundationDensity: utils.Round4(e.foundationDensity),
			},
			Explanation: explain(e.profile, e.foundationQuality, e.competencyQuality, e.competencyDensity),
		})
	}

	logger.Info("AHP analysis complete",
		"top_profile", recommendations[0].Profile,
		"top_score", recommendations[0].Score)

	return &models.AnalysisResponse{
		Status: "success",
		StudentMetadata: models.StudentMetadata{
			Name: transcript.StudentName,
			ID:   transcript.StudentID,
			GPA:  transcript.GPARaw,
		},
		TotalCredits:    totalCredits,
		Recommendations: recommendations,
	}, nil
}

// qualityScore is the weighted average grade over the relevant courses the
// student actually took: sum(weight * grade/4) / sum(weight). Courses not
// taken contribute to neither side; completion breadth is density's job,
// not quality's. Returns 0.0 when nothing relevant was taken.
func (s *AHPService) qualityScore(profile models.ProfileType, criteria models.CriteriaType, history map[string]evidence) float64 {
	totalWeightedPoints := 0.0
	totalWeight := 0.0

	for _, code := range s.kb.AllRuleCodes() {
		rule, ok := findRule(s.kb.GetRelevanceRules(code), profile, criteria)
		if !ok {
			continue
		}
		taken, ok := history[code]
		if !ok {
			continue
		}
		totalWeightedPoints += (taken.grade / 4.0) * rule.Weight
		totalWeight += rule.Weight
	}

	if totalWeight == 0 {
		return 0.0
	}
	return totalWeightedPoints / totalWeight
}

// competencySaturation is the elective count treated as full demonstrated
// interest. The cap keeps profiles with large elective catalogs from
// penalizing students who went deep into four of them.
const competencySaturation = 4.0

// densityScore measures breadth of exposure. Foundation uses the plain
// taken/available ratio; competency saturates at competencySaturation
// electives.
func (s *AHPService) densityScore(profile models.ProfileType, criteria models.CriteriaType, history map[string]evidence) float64 {
	available := 0
	taken := 0

	for _, code := range s.kb.AllRuleCodes() {
		if _, ok := findRule(s.kb.GetRelevanceRules(code), profile, criteria); !ok {
			continue
		}
		available++
		if _, ok := history[code]; ok {
			taken++
		}
	}

	if available == 0 {
		return 0.0
	}
	if criteria == models.CriteriaFoundation {
		return float64(taken) / float64(available)
	}
	score := float64(taken) / competencySaturation
	if score > 1.0 {
		return 1.0
	}
	return score
}

func findRule(rules []models.CourseRelevance, profile models.ProfileType, criteria models.CriteriaType) (models.CourseRelevance, bool) {
	for _, r := range rules {
		if r.Profile == profile && r.Type == criteria {
			return r, true
		}
	}
	return models.CourseRelevance{}, false
}

// Explanation thresholds.
const (
	explainHigh = 0.75
	explainMid  = 0.5
)

// explain walks an ordered band table over (competency quality, competency
// density, foundation quality); the first matching band wins and the
// catch-all guarantees a non-empty explanation.
func explain(profile models.ProfileType, fScore, cScore, dScore float64) string {
	name := string(profile)

	switch {
	case cScore > explainHigh && dScore == 1.0:
		return fmt.Sprintf("Excellent Candidate. High grades in %s electives and strong interest shown.", name)
	case cScore > explainHigh && dScore < explainMid:
		return fmt.Sprintf("Strong Potential. Good grades in the few %s courses taken, but low exposure.", name)
	case fScore > explainHigh && cScore < explainMid:
		return fmt.Sprintf("Solid Foundation. Good performance in basic courses, but struggling with advanced %s topics.", name)
	case dScore > 0.8 && cScore < explainMid:
		return fmt.Sprintf("High Interest, Low Performance. Has taken many %s courses but grades are below average.", name)
	case fScore < explainMid && cScore < explainMid:
		return fmt.Sprintf("Weak Match. Current academic history suggests difficulties with %s concepts.", name)
	default:
		return fmt.Sprintf("Moderate Match. Steady performance in %s related subjects.", name)
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

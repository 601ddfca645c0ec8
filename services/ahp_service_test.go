package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ahp_profiler/models"
)

const ahpCourses = `
- code: TI6043
  name: Machine Learning
  sks: 3
- code: TI6013
  name: Pengolahan Citra Digital
  sks: 3
- code: TI6023
  name: Data Mining
  sks: 3
- code: TI6033
  name: Deep Learning
  sks: 3
- code: TI6143
  name: Internet of Things
  sks: 3
- code: TI2023
  name: Basis Data
  sks: 4
`

// Five AI electives, one DMS foundation course.
const ahpRelevance = `
FOUNDATION:
  TI2023:
    DMS: 1.0
COMPETENCY:
  TI6043:
    AI: 1.0
  TI6013:
    AI: 0.8
  TI6023:
    AI: 0.9
  TI6033:
    AI: 1.0
  TI6143:
    AI: 0.3
`

func evidenceTranscript(courses ...models.ParsedCourse) *models.StudentTranscript {
	return &models.StudentTranscript{Courses: courses}
}

func course(code string, grade float64, sks int) models.ParsedCourse {
	return models.ParsedCourse{Code: code, Name: code, SKS: sks, GradeLetter: "A", GradeValue: grade}
}

func recommendationFor(t *testing.T, result *models.AnalysisResponse, profile models.ProfileType) models.ProfileRecommendation {
	t.Helper()
	for _, rec := range result.Recommendations {
		if rec.Profile == profile {
			return rec
		}
	}
	t.Fatalf("profile %s missing from recommendations", profile)
	return models.ProfileRecommendation{}
}

func TestAnalyzeSingleCompetencyCourse(t *testing.T) {
	// One AI competency rule exists, the student took it with a perfect
	// grade: competency quality 1.0, density 1/4, final 0.575.
	kb := newTestKB(t, ahpCourses, `
COMPETENCY:
  TI6043:
    AI: 1.0
`, "")
	svc := NewAHPService(kb)

	result, err := svc.Analyze(
		evidenceTranscript(course("TI6043", 4.0, 3)),
		models.AHPConfig{WFoundation: 0.2, WCompetency: 0.5, WDensity: 0.3},
	)
	require.NoError(t, err)

	ai := recommendationFor(t, result, models.ProfileAI)
	assert.Equal(t, 1, ai.Rank)
	assert.Equal(t, 0.0, ai.Details.FoundationScore)
	assert.Equal(t, 1.0, ai.Details.CompetencyScore)
	assert.Equal(t, 0.25, ai.Details.DensityScore)
	assert.Equal(t, 0.575, ai.Score)
	assert.Equal(t, 0.575, ai.Details.FinalAHPScore)
	assert.NotEmpty(t, ai.Explanation)

	assert.Equal(t, 3, result.TotalCredits)
}

func TestAnalyzeInvalidWeightsRejected(t *testing.T) {
	kb := newTestKB(t, ahpCourses, ahpRelevance, "")
	svc := NewAHPService(kb)

	_, err := svc.Analyze(
		evidenceTranscript(course("TI6043", 4.0, 3)),
		models.AHPConfig{WFoundation: 0.5, WCompetency: 0.5, WDensity: 0.5},
	)
	require.Error(t, err)
	var cfgErr *models.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestAnalyzeRankInvariant(t *testing.T) {
	kb := newTestKB(t, ahpCourses, ahpRelevance, "")
	svc := NewAHPService(kb)

	// Empty history: every profile scores 0.0, ties broken by the fixed
	// enumeration order.
	result, err := svc.Analyze(evidenceTranscript(), models.AHPConfig{WFoundation: 0.3, WCompetency: 0.5, WDensity: 0.2})
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 4)
	for i, rec := range result.Recommendations {
		assert.Equal(t, i+1, rec.Rank)
		assert.Equal(t, models.AllProfiles[i], rec.Profile, "ties keep AI, DMS, PSD, INFRA order")
	}
	assert.Equal(t, 0, result.TotalCredits)
}

func TestAnalyzeRanksDescendByScore(t *testing.T) {
	kb := newTestKB(t, ahpCourses, ahpRelevance, "")
	svc := NewAHPService(kb)

	result, err := svc.Analyze(
		evidenceTranscript(
			course("TI6043", 4.0, 3),
			course("TI2023", 3.0, 4),
		),
		models.AHPConfig{WFoundation: 0.3, WCompetency: 0.5, WDensity: 0.2},
	)
	require.NoError(t, err)

	seen := map[int]bool{}
	last := 2.0
	for _, rec := range result.Recommendations {
		assert.False(t, seen[rec.Rank], "ranks must be unique")
		seen[rec.Rank] = true
		assert.LessOrEqual(t, rec.Score, last)
		last = rec.Score
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true, 4: true}, seen)

	// AI has the only competency evidence, DMS the only foundation
	// evidence: AI must outrank DMS under competency-heavy weights.
	ai := recommendationFor(t, result, models.ProfileAI)
	dms := recommendationFor(t, result, models.ProfileDMS)
	assert.Less(t, ai.Rank, dms.Rank)
}

func TestQualityScoreNoRelevantCoursesTaken(t *testing.T) {
	kb := newTestKB(t, ahpCourses, ahpRelevance, "")
	svc := NewAHPService(kb)

	// INFRA has no rules at all: quality and density are 0.0, never a
	// division fault.
	result, err := svc.Analyze(
		evidenceTranscript(course("TI6043", 4.0, 3)),
		models.AHPConfig{WFoundation: 0.3, WCompetency: 0.5, WDensity: 0.2},
	)
	require.NoError(t, err)

	infra := recommendationFor(t, result, models.ProfileINFRA)
	assert.Equal(t, 0.0, infra.Details.CompetencyScore)
	assert.Equal(t, 0.0, infra.Details.DensityScore)
	assert.Equal(t, 0.0, infra.Score)
}

func TestDensitySaturation(t *testing.T) {
	kb := newTestKB(t, ahpCourses, ahpRelevance, "")
	svc := NewAHPService(kb)
	weights := models.AHPConfig{WFoundation: 0.3, WCompetency: 0.5, WDensity: 0.2}

	taken := []models.ParsedCourse{
		course("TI6043", 3.0, 3),
		course("TI6013", 3.0, 3),
		course("TI6023", 3.0, 3),
	}

	// 3 of 5 relevant electives: below the cap.
	result, err := svc.Analyze(evidenceTranscript(taken...), weights)
	require.NoError(t, err)
	assert.Equal(t, 0.75, recommendationFor(t, result, models.ProfileAI).Details.DensityScore)

	// Exactly 4: saturated.
	taken = append(taken, course("TI6033", 3.0, 3))
	result, err = svc.Analyze(evidenceTranscript(taken...), weights)
	require.NoError(t, err)
	assert.Equal(t, 1.0, recommendationFor(t, result, models.ProfileAI).Details.DensityScore)

	// 5 of 5: still 1.0, monotonic and capped.
	taken = append(taken, course("TI6143", 3.0, 3))
	result, err = svc.Analyze(evidenceTranscript(taken...), weights)
	require.NoError(t, err)
	assert.Equal(t, 1.0, recommendationFor(t, result, models.ProfileAI).Details.DensityScore)
}

func TestFoundationDensityIsDiagnosticOnly(t *testing.T) {
	kb := newTestKB(t, ahpCourses, ahpRelevance, "")
	svc := NewAHPService(kb)

	// DMS: one foundation course, taken with grade B (3.0/4.0 = 0.75).
	// Final score must be foundation quality * wF only; the 1.0
	// foundation density is reported but never weighted in.
	result, err := svc.Analyze(
		evidenceTranscript(course("TI2023", 3.0, 4)),
		models.AHPConfig{WFoundation: 0.3, WCompetency: 0.5, WDensity: 0.2},
	)
	require.NoError(t, err)

	dms := recommendationFor(t, result, models.ProfileDMS)
	assert.Equal(t, 0.75, dms.Details.FoundationScore)
	assert.Equal(t, 1.0, dms.Details.FoundationDensity)
	assert.Equal(t, 0.0, dms.Details.DensityScore, "no competency rules for DMS here")
	assert.Equal(t, 0.225, dms.Score, "0.75*0.3 + 0*0.5 + 0*0.2")
}

func TestAnalyzeRoundsAtOutputBoundary(t *testing.T) {
	kb := newTestKB(t, ahpCourses, `
COMPETENCY:
  TI6043:
    AI: 1.0
  TI6013:
    AI: 0.5
`, "")
	svc := NewAHPService(kb)

	// Quality = (1.0*1.0 + 0.5*(2.7/4)) / 1.5 = 0.891666..., rounds to
	// 0.8917 in the breakdown.
	result, err := svc.Analyze(
		evidenceTranscript(
			course("TI6043", 4.0, 3),
			models.ParsedCourse{Code: "TI6013", Name: "x", SKS: 3, GradeLetter: "B-", GradeValue: 2.7},
		),
		models.AHPConfig{WFoundation: 0, WCompetency: 1, WDensity: 0},
	)
	require.NoError(t, err)

	ai := recommendationFor(t, result, models.ProfileAI)
	assert.Equal(t, 0.8917, ai.Details.CompetencyScore)
	assert.Equal(t, 0.8917, ai.Score)
}

func TestAnalyzeEchoesStudentMetadata(t *testing.T) {
	kb := newTestKB(t, ahpCourses, ahpRelevance, "")
	svc := NewAHPService(kb)

	name := "BUDI SANTOSO"
	id := "2021150001"
	gpa := 3.45
	transcript := &models.StudentTranscript{
		StudentID:   &id,
		StudentName: &name,
		GPARaw:      &gpa,
		Courses:     []models.ParsedCourse{course("TI6043", 4.0, 3)},
	}

	result, err := svc.Analyze(transcript, models.AHPConfig{WFoundation: 0.3, WCompetency: 0.5, WDensity: 0.2})
	require.NoError(t, err)

	require.NotNil(t, result.StudentMetadata.Name)
	assert.Equal(t, name, *result.StudentMetadata.Name)
	require.NotNil(t, result.StudentMetadata.ID)
	assert.Equal(t, id, *result.StudentMetadata.ID)
	require.NotNil(t, result.StudentMetadata.GPA)
	assert.Equal(t, gpa, *result.StudentMetadata.GPA)
}

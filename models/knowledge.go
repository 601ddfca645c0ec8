package models

// CourseMetadata is the authoritative identity of a course: official name
// and credit units (SKS). The PDF parser trusts this over whatever the
// document says.
type CourseMetadata struct {
	Code string `yaml:"code" json:"code" example:"TI6043"`
	Name string `yaml:"name" json:"name" example:"Machine Learning"`
	SKS  int    `yaml:"sks" json:"sks" example:"3"`
}

// CourseRelevance links a course to a (profile, criteria) pair with a
// weight in [0,1]. 1.0 = critical for the profile, 0.1 = weak signal.
type CourseRelevance struct {
	Profile ProfileType  `json:"profile"`
	Weight  float64      `json:"weight"`
	Type    CriteriaType `json:"type"`
}

// PrerequisiteType classifies a constraint on taking a course.
type PrerequisiteType string

const (
	PrereqCourseGrade PrerequisiteType = "COURSE_GRADE" // minimum grade in another course
	PrereqSKSCount    PrerequisiteType = "SKS_COUNT"    // minimum total SKS passed
)

// PrerequisiteRule is one constraint on taking TargetCode. Multiple rules
// for the same target are an implicit AND.
type PrerequisiteRule struct {
	TargetCode   string           `json:"target_course_code"`
	Type         PrerequisiteType `json:"req_type"`
	RequiredCode string           `json:"required_course_code,omitempty"`
	MinGrade     float64          `json:"min_grade_value,omitempty"`
	MinSKS       int              `json:"min_sks,omitempty"`
}

// CourseUpdate is the admin payload for adding or updating a course.
type CourseUpdate struct {
	Code string `json:"code" example:"TI6043"`
	Name string `json:"name" example:"Machine Learning"`
	SKS  int    `json:"sks" example:"3"`
}

// RelevanceUpdate is the admin payload for replacing the relevance weights
// of a course within one criteria section.
type RelevanceUpdate struct {
	Code    string             `json:"code" example:"TI6043"`
	Type    string             `json:"type" example:"COMPETENCY"`
	Weights map[string]float64 `json:"weights"`
}

package models

// ParsedCourse is one course-taking fact extracted from the transcript,
// cross-validated against the course catalog. Name and SKS come from the
// knowledge base, the grade comes from the document.
type ParsedCourse struct {
	Code        string  `json:"code" example:"TI6043"`
	Name        string  `json:"name" example:"Machine Learning"`
	SKS         int     `json:"sks" example:"3"`
	GradeLetter string  `json:"grade_letter" example:"A"`
	GradeValue  float64 `json:"grade_value" example:"4.0"`
}

// StudentTranscript is the structured result of parsing one transcript
// document. Header fields stay nil when the document does not carry them.
type StudentTranscript struct {
	StudentID   *string        `json:"student_id"`
	StudentName *string        `json:"student_name"`
	Courses     []ParsedCourse `json:"courses"`
	GPARaw      *float64       `json:"gpa_raw"`
}

// SkippedLine records why a code-bearing transcript line was rejected.
type SkippedLine struct {
	Line   string `json:"line"`
	Reason string `json:"reason"`
}

// ExtractionReport is the parser's diagnostic side channel: rejected lines
// are expected outcomes of fuzzy text extraction, not errors.
type ExtractionReport struct {
	LineCount    int           `json:"line_count"`
	CoursesFound int           `json:"courses_found"`
	Skipped      []SkippedLine `json:"skipped,omitempty"`
}

package services

import (
	"regexp"
	"strconv"
	"strings"

	"ahp_profiler/logger"
	"ahp_profiler/models"
	"ahp_profiler/utils"
)

// TranscriptParser extracts structured evidence from a transcript PDF,
// specific to the campus "Daftar Nilai" layout. The document is trusted
// only for which courses were taken and with what grade; names and SKS
// come from the knowledge base.
type TranscriptParser struct {
	kb     *KnowledgeBase
	source PageTextSource
}

// NewTranscriptParser wires the parser to its knowledge base and text
// source.
func NewTranscriptParser(kb *KnowledgeBase, source PageTextSource) *TranscriptParser {
	return &TranscriptParser{kb: kb, source: source}
}

var (
	// Course codes: faculty prefix whitelist followed by four digits.
	courseCodePattern = regexp.MustCompile(`(?:TI|MH|EL)\d{4}`)

	// Grade tokens are matched against whole whitespace-separated fields.
	// F is locatable but carries no points, so a failed course still
	// counts as taken without inventing a grade.
	gradeTokenPattern = regexp.MustCompile(`^[A-F][+-]?$`)

	// Header fields, label-anchored and case-insensitive. Absence of any
	// of them is not an error.
	nimPattern  = regexp.MustCompile(`(?i)No\.?\s*Mahasiswa\s*:\s*(\d+)`)
	namePattern = regexp.MustCompile(`(?im)Nama\s*:\s*(.+?)\s*(?:Fakultas|Program|$)`)
	gpaPattern  = regexp.MustCompile(`(?i)IP\s*Kumulatif\s*:\s*([\d.]+)`)
)

// gradeScale maps transcript letter grades to the campus 4.0 scale. Any
// token outside the map scores 0.0.
var gradeScale = map[string]float64{
	"A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0,
	"D": 1.0, "E": 0.0,
}

// ParsePDF converts raw PDF bytes into a StudentTranscript plus the
// skipped-line diagnostics. It fails only when the document itself is
// unreadable; a readable document with zero matches parses to an empty
// transcript, which the caller treats as its own error condition.
func (p *TranscriptParser) ParsePDF(fileBytes []byte) (*models.StudentTranscript, *models.ExtractionReport, error) {
	logger.Info("starting PDF parsing", "size_bytes", len(fileBytes))

	lines, err := p.source.ExtractLines(fileBytes)
	if err != nil {
		logger.Error("PDF text extraction failed", "error", err)
		return nil, nil, err
	}
	fullText := strings.Join(lines, "\n")
	logger.Debug("extracted text from PDF", "lines", len(lines), "chars", len(fullText))

	transcript := &models.StudentTranscript{
		StudentID:   extractHeaderField(fullText, nimPattern),
		StudentName: extractHeaderField(fullText, namePattern),
		GPARaw:      p.extractGPA(fullText),
	}

	courses, report := p.extractCourses(lines)
	transcript.Courses = courses
	report.LineCount = len(lines)

	if len(courses) == 0 {
		logger.Warn("no courses found in PDF, format may not match the campus standard")
	}
	logger.Info("transcript parsed", "courses", len(courses), "skipped_lines", len(report.Skipped))

	return transcript, report, nil
}

// extractHeaderField applies a label-anchored pattern to the whole text.
func extractHeaderField(text string, pattern *regexp.Regexp) *string {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	value := strings.TrimSpace(match[1])
	if value == "" {
		return nil
	}
	return &value
}

func (p *TranscriptParser) extractGPA(text string) *float64 {
	raw := extractHeaderField(text, gpaPattern)
	if raw == nil {
		return nil
	}
	gpa, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		logger.Warn("could not parse GPA from header", "value", *raw)
		return nil
	}
	return &gpa
}

// extractCourses scans every line for a course row. A line is accepted
// only when it carries a whitelisted course code, a grade token, and the
// code exists in the knowledge base; everything else is skipped, with
// diagnostics for code-bearing lines. The first occurrence of a code wins,
// which absorbs header rows repeated across pages.
func (p *TranscriptParser) extractCourses(lines []string) ([]models.ParsedCourse, *models.ExtractionReport) {
	report := &models.ExtractionReport{}
	var results []models.ParsedCourse
	seen := make(map[string]bool)

	for _, line := range lines {
		code := courseCodePattern.FindString(line)
		if code == "" {
			continue // not a course row
		}
		code = utils.NormalizeCourseCode(code)

		gradeLetter, ok := rightmostGradeToken(line)
		if !ok {
			report.Skipped = append(report.Skipped, models.SkippedLine{
				Line: line, Reason: "no grade token found",
			})
			continue
		}

		if seen[code] {
			report.Skipped = append(report.Skipped, models.SkippedLine{
				Line: line, Reason: "duplicate course code " + code,
			})
			continue
		}

		// Ground-truth lookup: a code absent from the catalog cannot be
		// scored and must never reach the inference engine.
		meta, known := p.kb.GetCourseMetadata(code)
		if !known {
			logger.Warn("course code not in knowledge base, skipping line", "code", code)
			report.Skipped = append(report.Skipped, models.SkippedLine{
				Line: line, Reason: "unknown course code " + code,
			})
			continue
		}

		seen[code] = true
		results = append(results, models.ParsedCourse{
			Code:        code,
			Name:        meta.Name,
			SKS:         meta.SKS,
			GradeLetter: gradeLetter,
			GradeValue:  gradeScale[gradeLetter], // unmapped tokens score 0.0
		})
	}

	report.CoursesFound = len(results)
	return results, report
}

// rightmostGradeToken finds the last whitespace-separated field on the
// line that looks like a letter grade. Rightmost wins because course names
// themselves contain grade-like letters.
func rightmostGradeToken(line string) (string, bool) {
	fields := strings.Fields(line)
	for i := len(fields) - 1; i >= 0; i-- {
		if gradeTokenPattern.MatchString(fields[i]) {
			return fields[i], true
		}
	}
	return "", false
}

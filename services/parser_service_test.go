package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ahp_profiler/models"
)

// stubTextSource feeds canned lines into the parser, standing in for the
// PDF text layer.
type stubTextSource struct {
	lines []string
	err   error
}

func (s *stubTextSource) ExtractLines(data []byte) ([]string, error) {
	return s.lines, s.err
}

const parserCourses = `
- code: TI6043
  name: Machine Learning
  sks: 3
- code: TI2023
  name: Basis Data
  sks: 4
- code: TI1013
  name: Dasar Pemrograman
  sks: 4
`

func newTestParser(t *testing.T, lines []string) *TranscriptParser {
	t.Helper()
	kb := newTestKB(t, parserCourses, "", "")
	return NewTranscriptParser(kb, &stubTextSource{lines: lines})
}

func TestParsePDFHeaderFields(t *testing.T) {
	parser := newTestParser(t, []string{
		"UNIVERSITAS TEKNOLOGI",
		"Nama : BUDI SANTOSO Fakultas Teknologi Informasi",
		"No. Mahasiswa : 2021150001",
		"IP Kumulatif : 3.45",
	})

	transcript, _, err := parser.ParsePDF([]byte("ignored"))
	require.NoError(t, err)

	require.NotNil(t, transcript.StudentName)
	assert.Equal(t, "BUDI SANTOSO", *transcript.StudentName)
	require.NotNil(t, transcript.StudentID)
	assert.Equal(t, "2021150001", *transcript.StudentID)
	require.NotNil(t, transcript.GPARaw)
	assert.Equal(t, 3.45, *transcript.GPARaw)
}

func TestParsePDFHeaderFieldsAbsent(t *testing.T) {
	parser := newTestParser(t, []string{"TI6043 Machine Learning 3 A"})

	transcript, _, err := parser.ParsePDF([]byte("ignored"))
	require.NoError(t, err)

	assert.Nil(t, transcript.StudentName, "absent header fields stay unset")
	assert.Nil(t, transcript.StudentID)
	assert.Nil(t, transcript.GPARaw)
}

func TestParsePDFCourseExtraction(t *testing.T) {
	parser := newTestParser(t, []string{
		"KODE MATA KULIAH SKS NILAI",
		"TI6043 Machine Learning 3 A",
		"TI9999 Mata Kuliah Misterius 3 B", // not in the knowledge base
		"TI6043 Machine Learning 3 B",      // duplicate, first occurrence wins
		"TI2023 Basis Data 4",              // no grade token
		"Halaman 1 dari 2",
	})

	transcript, report, err := parser.ParsePDF([]byte("ignored"))
	require.NoError(t, err)

	require.Len(t, transcript.Courses, 1)
	course := transcript.Courses[0]
	assert.Equal(t, "TI6043", course.Code)
	assert.Equal(t, "Machine Learning", course.Name, "name comes from the knowledge base")
	assert.Equal(t, 3, course.SKS)
	assert.Equal(t, "A", course.GradeLetter, "duplicate keeps the first grade")
	assert.Equal(t, 4.0, course.GradeValue)

	assert.Equal(t, 1, report.CoursesFound)
	require.Len(t, report.Skipped, 3)
	reasons := []string{report.Skipped[0].Reason, report.Skipped[1].Reason, report.Skipped[2].Reason}
	assert.Contains(t, reasons, "unknown course code TI9999")
	assert.Contains(t, reasons, "duplicate course code TI6043")
	assert.Contains(t, reasons, "no grade token found")
}

func TestParsePDFRightmostGradeToken(t *testing.T) {
	// The course name contains a stand-alone grade-like token ("C"); the
	// rightmost token must win.
	parser := newTestParser(t, []string{
		"TI1013 PEMROGRAMAN C 4 B+",
	})

	transcript, _, err := parser.ParsePDF([]byte("ignored"))
	require.NoError(t, err)

	require.Len(t, transcript.Courses, 1)
	assert.Equal(t, "B+", transcript.Courses[0].GradeLetter)
	assert.Equal(t, 3.3, transcript.Courses[0].GradeValue)
}

func TestParsePDFGradeScale(t *testing.T) {
	tests := []struct {
		letter string
		value  float64
	}{
		{"A", 4.0}, {"A-", 3.7},
		{"B+", 3.3}, {"B", 3.0}, {"B-", 2.7},
		{"C+", 2.3}, {"C", 2.0},
		{"D", 1.0}, {"E", 0.0},
		{"F", 0.0}, // unrecognized token maps to 0.0, never an error
	}

	for _, tt := range tests {
		t.Run(tt.letter, func(t *testing.T) {
			parser := newTestParser(t, []string{"TI6043 Machine Learning 3 " + tt.letter})

			transcript, _, err := parser.ParsePDF([]byte("ignored"))
			require.NoError(t, err)
			require.Len(t, transcript.Courses, 1)
			assert.Equal(t, tt.letter, transcript.Courses[0].GradeLetter)
			assert.Equal(t, tt.value, transcript.Courses[0].GradeValue)
		})
	}
}

func TestParsePDFExtractionFailure(t *testing.T) {
	kb := newTestKB(t, parserCourses, "", "")
	parser := NewTranscriptParser(kb, &stubTextSource{err: models.ErrDocumentExtraction})

	_, _, err := parser.ParsePDF([]byte("not a pdf"))
	assert.ErrorIs(t, err, models.ErrDocumentExtraction)
}

func TestPDFTextSourceRejectsGarbage(t *testing.T) {
	source := NewPDFTextSource()

	_, err := source.ExtractLines([]byte("definitely not a pdf"))
	assert.ErrorIs(t, err, models.ErrDocumentExtraction)
}

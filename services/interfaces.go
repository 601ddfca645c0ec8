package services

import (
	"ahp_profiler/models"
)

// TranscriptService converts an uploaded document into structured
// evidence.
type TranscriptService interface {
	// Parse the raw PDF bytes into a transcript plus skip diagnostics.
	ParsePDF(fileBytes []byte) (*models.StudentTranscript, *models.ExtractionReport, error)
}

// AnalysisService turns a transcript into ranked profile recommendations.
type AnalysisService interface {
	// Run the AHP ratings-mode calculation with the given weights.
	Analyze(transcript *models.StudentTranscript, cfg models.AHPConfig) (*models.AnalysisResponse, error)
}

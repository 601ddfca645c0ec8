package utils

import (
	"errors"
	"net/http"

	"ahp_profiler/models"
)

// IsConfigurationError checks whether an error is an AHP weight rejection.
func IsConfigurationError(err error) bool {
	var cfgErr *models.ConfigurationError
	return errors.As(err, &cfgErr)
}

// HandleAnalysisError maps an analysis-pipeline error to the response
// envelope. Request-level failures are terminal, never retried here.
func HandleAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case IsConfigurationError(err):
		WriteCustomErrorResponse(w, models.CodeInvalidWeights, err.Error(), map[string]interface{}{})
	case errors.Is(err, models.ErrDocumentExtraction):
		WriteCustomErrorResponse(w, models.CodeExtractionError, err.Error(), map[string]interface{}{})
	case errors.Is(err, models.ErrEmptyEvidence):
		WriteErrorResponse(w, models.CodeNoCoursesFound, map[string]interface{}{})
	default:
		WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
	}
}

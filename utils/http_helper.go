package utils

import (
	"encoding/json"
	"net/http"

	"ahp_profiler/models"
)

// httpStatusForCode maps an envelope code to its HTTP status: client
// mistakes are 400, an unresolvable course is 404, a document that could
// not be processed is 422, everything else server-side is 500.
func httpStatusForCode(code int) int {
	switch code {
	case models.CodeSuccess:
		return http.StatusOK
	case models.CodeCourseNotFound:
		return http.StatusNotFound
	case models.CodeExtractionError, models.CodeNoCoursesFound:
		return http.StatusUnprocessableEntity
	case models.CodeServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// writeEnvelope sets the mapped status before the body goes out.
func writeEnvelope(w http.ResponseWriter, code int, envelope models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusForCode(code))
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	encoder.Encode(envelope)
}

// WriteSuccessResponse writes a success envelope.
func WriteSuccessResponse(w http.ResponseWriter, data interface{}) {
	writeEnvelope(w, models.CodeSuccess, models.NewSuccessResponse(data))
}

// WriteErrorResponse writes an error envelope for a known code.
func WriteErrorResponse(w http.ResponseWriter, code int, data interface{}) {
	writeEnvelope(w, code, models.NewErrorResponse(code, data))
}

// WriteCustomErrorResponse writes an error envelope with a custom message.
func WriteCustomErrorResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	writeEnvelope(w, code, models.NewCustomErrorResponse(code, message, data))
}

// ValidateCourseCode checks the course code path/payload parameter.
func ValidateCourseCode(w http.ResponseWriter, code string) bool {
	if NormalizeCourseCode(code) == "" {
		WriteErrorResponse(w, models.CodeMissingParams, map[string]interface{}{
			"param": "code",
		})
		return false
	}
	return true
}

package models

// Response codes
const (
	// success
	CodeSuccess = 0

	// client errors (1000-1999)
	CodeInvalidParams   = 1000 // invalid parameter
	CodeMissingParams   = 1001 // missing required parameter
	CodeInvalidWeights  = 1002 // AHP weight triple invalid
	CodeInvalidFileType = 1003 // not a PDF upload
	CodeEmptyFile       = 1004 // uploaded file is empty
	CodeCourseNotFound  = 1005 // course code not in the knowledge base

	// server errors (2000-2999)
	CodeServerError     = 2000 // internal server error
	CodeExtractionError = 2001 // document could not be read
	CodeNoCoursesFound  = 2002 // readable document, zero valid course rows
)

// Messages for each response code
var CodeMessages = map[int]string{
	CodeSuccess:         "success",
	CodeInvalidParams:   "invalid parameter",
	CodeMissingParams:   "missing required parameter",
	CodeInvalidWeights:  "AHP weights must be non-negative and sum to 1.0",
	CodeInvalidFileType: "invalid file type, only PDF is supported",
	CodeEmptyFile:       "uploaded file is empty",
	CodeCourseNotFound:  "course not found",
	CodeServerError:     "internal server error",
	CodeExtractionError: "invalid PDF file or corrupted format",
	CodeNoCoursesFound:  "could not extract any courses, please check the transcript format",
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Code:    CodeSuccess,
		Message: CodeMessages[CodeSuccess],
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope from a known code.
func NewErrorResponse(code int, data interface{}) APIResponse {
	message, exists := CodeMessages[code]
	if !exists {
		message = "unknown error"
	}
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewCustomErrorResponse builds an error envelope with a custom message.
func NewCustomErrorResponse(code int, message string, data interface{}) APIResponse {
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

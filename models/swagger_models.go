package models

// APIResponse is the generic response envelope.
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// KnowledgeBaseStatus summarizes the live, in-memory knowledge base for
// the debug endpoint.
type KnowledgeBaseStatus struct {
	Status string                 `json:"status" example:"active"`
	Counts KnowledgeBaseCounts    `json:"counts"`
	Sample map[string]interface{} `json:"sample,omitempty"`
}

// KnowledgeBaseCounts holds the index sizes of the three rule sources.
type KnowledgeBaseCounts struct {
	CoursesWithMetadata      int `json:"courses_with_metadata" example:"42"`
	CoursesWithScoringRules  int `json:"courses_with_scoring_rules" example:"30"`
	CoursesWithPrerequisites int `json:"courses_with_prerequisites" example:"7"`
}

// ParseDebugResponse is the debug parse endpoint payload: the extracted
// transcript plus the skipped-line diagnostics.
type ParseDebugResponse struct {
	Transcript StudentTranscript `json:"transcript"`
	Report     ExtractionReport  `json:"report"`
}

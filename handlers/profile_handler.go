package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"ahp_profiler/config"
	_ "ahp_profiler/docs" // swagger docs
	"ahp_profiler/logger"
	"ahp_profiler/models"
	"ahp_profiler/services"
	"ahp_profiler/utils"
)

// ProfileHandler serves the transcript analysis endpoints.
type ProfileHandler struct {
	cfg    *config.Config
	kb     *services.KnowledgeBase
	parser services.TranscriptService
	ahp    services.AnalysisService
}

// NewProfileHandler wires the analysis endpoints to their services.
func NewProfileHandler(cfg *config.Config, kb *services.KnowledgeBase, parser services.TranscriptService, ahp services.AnalysisService) *ProfileHandler {
	return &ProfileHandler{cfg: cfg, kb: kb, parser: parser, ahp: ahp}
}

// AnalyzeHandler godoc
// @Summary Analyze a student transcript and return AHP-based profile recommendations
// @Description Uploads a PDF transcript, extracts course codes and grades, enriches them from the knowledge base and ranks the four specialization profiles
// @Tags Profiling
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Transcript PDF"
// @Param w_foundation query number false "Weight for foundation quality" default(0.3)
// @Param w_competency query number false "Weight for competency quality" default(0.5)
// @Param w_density query number false "Weight for elective density" default(0.2)
// @Success 200 {object} models.APIResponse "success"
// @Failure 400 {object} models.APIResponse "invalid weights or file"
// @Failure 422 {object} models.APIResponse "unreadable document or no courses"
// @Router /api/v1/analyze [post]
func (h *ProfileHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	// Weights are validated before any file I/O: an invalid configuration
	// is rejected without reading the upload at all.
	ahpCfg, ok := h.weightsFromQuery(w, r)
	if !ok {
		return
	}
	if err := ahpCfg.Validate(); err != nil {
		utils.HandleAnalysisError(w, err)
		return
	}

	fileBytes, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	transcript, _, err := h.parser.ParsePDF(fileBytes)
	if err != nil {
		utils.HandleAnalysisError(w, err)
		return
	}

	// Readable document, zero valid courses: distinct from an extraction
	// failure and reported as such.
	if len(transcript.Courses) == 0 {
		utils.HandleAnalysisError(w, models.ErrEmptyEvidence)
		return
	}

	result, err := h.ahp.Analyze(transcript, ahpCfg)
	if err != nil {
		utils.HandleAnalysisError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, result)
}

// DebugParseHandler godoc
// @Summary Parse a PDF and return the raw extracted data
// @Description Development tool: shows exactly what the parser extracts, including skipped-line diagnostics
// @Tags Debugging
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Transcript PDF"
// @Success 200 {object} models.APIResponse "success"
// @Failure 422 {object} models.APIResponse "unreadable document"
// @Router /api/v1/debug/parse-pdf [post]
func (h *ProfileHandler) DebugParseHandler(w http.ResponseWriter, r *http.Request) {
	fileBytes, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	transcript, report, err := h.parser.ParsePDF(fileBytes)
	if err != nil {
		utils.HandleAnalysisError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, models.ParseDebugResponse{
		Transcript: *transcript,
		Report:     *report,
	})
}

// DebugKnowledgeBaseHandler godoc
// @Summary Inspect the live, in-memory knowledge base
// @Description Development tool: returns index counts and a small sample to verify the rule files are active
// @Tags Debugging
// @Produce json
// @Success 200 {object} models.APIResponse "success"
// @Router /api/v1/debug/knowledge-base [get]
func (h *ProfileHandler) DebugKnowledgeBaseHandler(w http.ResponseWriter, r *http.Request) {
	logger.Info("debug request for knowledge base state")

	sampleCodes := h.kb.AllRuleCodes()
	if len(sampleCodes) > 5 {
		sampleCodes = sampleCodes[:5]
	}
	sampleRules := map[string]interface{}{}
	for _, code := range sampleCodes {
		sampleRules[code] = h.kb.GetRelevanceRules(code)
	}

	utils.WriteSuccessResponse(w, models.KnowledgeBaseStatus{
		Status: "active",
		Counts: h.kb.Counts(),
		Sample: sampleRules,
	})
}

// weightsFromQuery reads the optional weight overrides, falling back to
// the configured defaults.
func (h *ProfileHandler) weightsFromQuery(w http.ResponseWriter, r *http.Request) (models.AHPConfig, bool) {
	ahpCfg := models.AHPConfig{
		WFoundation: h.cfg.AHP.WFoundation,
		WCompetency: h.cfg.AHP.WCompetency,
		WDensity:    h.cfg.AHP.WDensity,
	}

	read := func(param string, target *float64) bool {
		raw := r.URL.Query().Get(param)
		if raw == "" {
			return true
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{
				"param": param, "value": raw,
			})
			return false
		}
		*target = value
		return true
	}

	if !read("w_foundation", &ahpCfg.WFoundation) ||
		!read("w_competency", &ahpCfg.WCompetency) ||
		!read("w_density", &ahpCfg.WDensity) {
		return models.AHPConfig{}, false
	}
	return ahpCfg, true
}

// readUpload fetches and validates the multipart PDF upload.
func (h *ProfileHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	maxSize := int64(h.cfg.Upload.MaxSizeMB) << 20
	if err := r.ParseMultipartForm(maxSize); err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeInvalidParams, "invalid multipart upload: "+err.Error(), map[string]interface{}{})
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteErrorResponse(w, models.CodeMissingParams, map[string]interface{}{
			"param": "file",
		})
		return nil, false
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		utils.WriteErrorResponse(w, models.CodeInvalidFileType, map[string]interface{}{
			"filename": header.Filename, "content_type": contentType,
		})
		return nil, false
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeServerError, "failed to read upload: "+err.Error(), map[string]interface{}{})
		return nil, false
	}
	if len(fileBytes) == 0 {
		utils.WriteErrorResponse(w, models.CodeEmptyFile, map[string]interface{}{})
		return nil, false
	}

	logger.Info("received transcript upload", "filename", header.Filename, "size_bytes", len(fileBytes))
	return fileBytes, true
}

// RootHandler godoc
// @Summary Service banner
// @Tags Profiling
// @Produce json
// @Success 200 {object} map[string]interface{} "running"
// @Router / [get]
func RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"message": "AHP profiler is running",
		"docs":    "/swagger/index.html",
	})
}

// RegisterRoutes mounts every endpoint on the router.
func RegisterRoutes(r *chi.Mux, cfg *config.Config, kb *services.KnowledgeBase, parser services.TranscriptService, ahp services.AnalysisService) {
	profile := NewProfileHandler(cfg, kb, parser, ahp)
	admin := NewAdminHandler(kb)

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/", RootHandler)

	r.Post("/api/v1/analyze", profile.AnalyzeHandler)
	r.Post("/api/v1/debug/parse-pdf", profile.DebugParseHandler)
	r.Get("/api/v1/debug/knowledge-base", profile.DebugKnowledgeBaseHandler)

	r.Get("/api/v1/admin/courses", admin.ListCoursesHandler)
	r.Post("/api/v1/admin/courses", admin.UpsertCourseHandler)
	r.Delete("/api/v1/admin/courses/{code}", admin.DeleteCourseHandler)
	r.Post("/api/v1/admin/rules", admin.UpdateRulesHandler)
	r.Post("/api/v1/admin/reload", admin.ReloadHandler)
}

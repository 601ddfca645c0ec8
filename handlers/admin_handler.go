package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ahp_profiler/logger"
	"ahp_profiler/models"
	"ahp_profiler/services"
	"ahp_profiler/utils"
)

// AdminHandler serves the knowledge base administration endpoints. Every
// mutation is atomic with respect to concurrent analysis requests: readers
// observe either the pre- or post-mutation index state in full.
type AdminHandler struct {
	kb *services.KnowledgeBase
}

// NewAdminHandler wires the admin endpoints to the knowledge base.
func NewAdminHandler(kb *services.KnowledgeBase) *AdminHandler {
	return &AdminHandler{kb: kb}
}

// ListCoursesHandler godoc
// @Summary List all defined courses
// @Tags Admin
// @Produce json
// @Success 200 {object} models.APIResponse "success"
// @Router /api/v1/admin/courses [get]
func (h *AdminHandler) ListCoursesHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessResponse(w, h.kb.AllCourses())
}

// UpsertCourseHandler godoc
// @Summary Add or update a course
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body models.CourseUpdate true "Course"
// @Success 200 {object} models.APIResponse "success"
// @Failure 400 {object} models.APIResponse "invalid payload"
// @Router /api/v1/admin/courses [post]
func (h *AdminHandler) UpsertCourseHandler(w http.ResponseWriter, r *http.Request) {
	var payload models.CourseUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeInvalidParams, "invalid JSON payload: "+err.Error(), map[string]interface{}{})
		return
	}
	if !utils.ValidateCourseCode(w, payload.Code) {
		return
	}

	meta := models.CourseMetadata{Code: payload.Code, Name: payload.Name, SKS: payload.SKS}
	if err := h.kb.AddOrUpdateCourse(meta); err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeInvalidParams, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"message": "course " + utils.NormalizeCourseCode(payload.Code) + " saved",
	})
}

// DeleteCourseHandler godoc
// @Summary Delete a course
// @Tags Admin
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} models.APIResponse "success"
// @Failure 404 {object} models.APIResponse "course not found"
// @Router /api/v1/admin/courses/{code} [delete]
func (h *AdminHandler) DeleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !utils.ValidateCourseCode(w, code) {
		return
	}

	if !h.kb.DeleteCourse(code) {
		utils.WriteErrorResponse(w, models.CodeCourseNotFound, map[string]interface{}{
			"code": utils.NormalizeCourseCode(code),
		})
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"message": "course " + utils.NormalizeCourseCode(code) + " deleted",
	})
}

// UpdateRulesHandler godoc
// @Summary Update the AHP relevance weights of a course
// @Description Replaces the scoring weights for one course within one criteria section
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body models.RelevanceUpdate true "Rule update"
// @Success 200 {object} models.APIResponse "success"
// @Failure 400 {object} models.APIResponse "invalid payload"
// @Router /api/v1/admin/rules [post]
func (h *AdminHandler) UpdateRulesHandler(w http.ResponseWriter, r *http.Request) {
	var payload models.RelevanceUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeInvalidParams, "invalid JSON payload: "+err.Error(), map[string]interface{}{})
		return
	}
	if !utils.ValidateCourseCode(w, payload.Code) {
		return
	}

	criteria, ok := models.ParseCriteria(payload.Type)
	if !ok {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{
			"param": "type", "value": payload.Type,
		})
		return
	}

	if err := h.kb.UpdateRelevanceRules(payload.Code, criteria, payload.Weights); err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeInvalidParams, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"message": "rules updated for " + utils.NormalizeCourseCode(payload.Code),
	})
}

// ReloadHandler godoc
// @Summary Re-read all rule files from disk
// @Description Rebuilds the whole index set off to the side and swaps it in atomically
// @Tags Admin
// @Produce json
// @Success 200 {object} models.APIResponse "success"
// @Router /api/v1/admin/reload [post]
func (h *AdminHandler) ReloadHandler(w http.ResponseWriter, r *http.Request) {
	logger.Info("manual knowledge base reload requested")
	h.kb.Reload()

	counts := h.kb.Counts()
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"message": "knowledge base reloaded from disk",
		"counts":  counts,
	})
}

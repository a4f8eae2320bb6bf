package handlers

import (
	"errors"
	"net/http"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/common"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
	applyLimit   int
}

// NewApplicationHandler limits each student to applyLimit applications per
// minute. A nil limiter or a non-positive limit disables the check.
func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter, applyLimit int) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter, applyLimit: applyLimit}
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req applyRequest
	// The body is optional; an application needs no cover letter.
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		response.Error(w, err)
		return
	}
	if h.limiter != nil && h.applyLimit > 0 {
		if !h.limiter.Allow(r.Context(), "apply:"+p.ID.String(), h.applyLimit, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Apply(r.Context(), p, jobID, req.CoverLetter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) ListForJob(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	query := r.URL.Query()
	items, err := h.applications.ListForJob(r.Context(), p, jobID, app.ApplicantCriteria{
		Status:  query.Get("status"),
		Skills:  query.Get("skills"),
		Year:    query.Get("year"),
		College: query.Get("college"),
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	items, err := h.applications.ListOwn(r.Context(), p)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), p, applicationID, req.Status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

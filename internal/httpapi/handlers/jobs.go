package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"mediaforge/internal/httpkit"
	"mediaforge/internal/pkg/errors"
)

// GetJob reports the tracked state of an async job.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jobID := strings.TrimSpace(chi.URLParam(r, "jobId"))
	if jobID == "" {
		httpkit.WriteErr(w, http.StatusBadRequest, string(errors.CodeValidation), "jobId is required", map[string]any{"field": "jobId"})
		return
	}

	job, err := h.store.Get(ctx, jobID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpkit.WriteJSON(w, http.StatusOK, job)
}

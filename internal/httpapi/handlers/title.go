package handlers

import (
	"net/http"

	"mediaforge/internal/httpkit"
	"mediaforge/internal/orchestrator"
	"mediaforge/internal/pkg/errors"
	"mediaforge/internal/render"
)

// PostAddTitle composes a title band above the video frame.
func (h *Handler) PostAddTitle(w http.ResponseWriter, r *http.Request) {
	h.compose(w, r, render.PlacementTop)
}

// PostCaption composes a caption band below the video frame.
func (h *Handler) PostCaption(w http.ResponseWriter, r *http.Request) {
	h.compose(w, r, render.PlacementBottom)
}

func (h *Handler) compose(w http.ResponseWriter, r *http.Request, placement render.Placement) {
	ctx := r.Context()
	log := h.log.FromContext(ctx)

	var req orchestrator.TitleRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		httpkit.WriteErr(w, http.StatusBadRequest, string(errors.CodeValidation), "invalid request body: "+err.Error(), nil)
		return
	}
	req.Placement = placement

	job, task, err := h.orch.Submit(ctx, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if req.Async {
		log.Info("job accepted", "job_id", job.ID)
		httpkit.WriteJSON(w, http.StatusAccepted, job)
		return
	}

	job, err = task.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Client went away; nothing left to write.
			return
		}
		if job != nil {
			// Failed jobs still report their id and terminal state.
			defer h.orch.Forget(ctx, job.ID)
			httpkit.WriteJSON(w, errors.GetHTTPStatus(err), job)
			return
		}
		h.writeError(w, r, err)
		return
	}

	defer h.orch.Forget(ctx, job.ID)
	httpkit.WriteJSON(w, http.StatusOK, job)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := h.log.FromContext(r.Context())
	status := errors.GetHTTPStatus(err)
	if status >= 500 {
		log.LogError(r.Context(), "request failed", err)
	}
	httpkit.WriteErr(w, status, string(errors.GetCode(err)), err.Error(), errors.GetFields(err))
}

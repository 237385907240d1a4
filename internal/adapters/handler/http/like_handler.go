package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
)

type LikeHandler struct {
	service ports.LikeService
}

func NewLikeHandler(service ports.LikeService) *LikeHandler {
	return &LikeHandler{
		service: service,
	}
}

// ToggleLike likes or un-likes a poll for the caller and returns the
// refreshed poll including the updated like count.
func (h *LikeHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	pollID, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "invalid poll id format")
		return
	}

	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		writeError(w, http.StatusUnauthorized, kindUnauthorized, "missing user context")
		return
	}

	poll, err := h.service.Toggle(r.Context(), userID, pollID)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			writeError(w, http.StatusNotFound, kindNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, kindInternal, "failed to toggle like")
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

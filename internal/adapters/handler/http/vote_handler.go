package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

// ToggleVote casts, retracts, or switches the caller's vote on a poll and
// returns the refreshed target option.
func (h *VoteHandler) ToggleVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "invalid poll or option id format")
		return
	}
	optionID, err := domain.ParseID(chi.URLParam(r, "optionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "invalid poll or option id format")
		return
	}

	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		writeError(w, http.StatusUnauthorized, kindUnauthorized, "missing user context")
		return
	}

	option, err := h.service.Toggle(r.Context(), userID, pollID, optionID)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) || errors.Is(err, domain.ErrOptionNotFound) {
			writeError(w, http.StatusNotFound, kindNotFound, err.Error())
			return
		}
		if errors.Is(err, domain.ErrOptionMismatch) {
			writeError(w, http.StatusBadRequest, kindBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, kindInternal, "failed to toggle vote")
		return
	}

	writeJSON(w, http.StatusOK, option)
}

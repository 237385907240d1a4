package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Text string `json:"text"`
}

type createOptionRequest struct {
	Text string `json:"text"`
}

// CreatePoll godoc
// @Summary      Creates a poll
// @Tags         polls
// @Accept       json
// @Success      201
// @Failure      400
// @Router       /polls/create [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		writeError(w, http.StatusUnauthorized, kindUnauthorized, "missing user context")
		return
	}

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "invalid request body")
		return
	}

	poll, err := h.service.Create(r.Context(), userID, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, kindBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, kindInternal, "failed to create poll")
		return
	}

	writeJSON(w, http.StatusCreated, poll)
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "invalid poll id format")
		return
	}

	poll, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			writeError(w, http.StatusNotFound, kindNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, kindInternal, "failed to fetch poll")
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.service.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, kindInternal, "failed to list polls")
		return
	}
	if polls == nil {
		polls = []*domain.Poll{}
	}

	writeJSON(w, http.StatusOK, polls)
}

// AddOption godoc
// @Summary      Adds an option to a poll
// @Description  Only the poll creator can add options.
// @Tags         polls
// @Accept       json
// @Success      201
// @Failure      403
// @Failure      404
// @Router       /polls/{id}/options [post]
func (h *PollHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		writeError(w, http.StatusUnauthorized, kindUnauthorized, "missing user context")
		return
	}

	pollID, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "invalid poll id format")
		return
	}

	var req createOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "invalid request body")
		return
	}

	option, err := h.service.AddOption(r.Context(), userID, pollID, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, kindBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrPollNotFound) {
			writeError(w, http.StatusNotFound, kindNotFound, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotCreator) {
			writeError(w, http.StatusForbidden, kindForbidden, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, kindInternal, "failed to create option")
		return
	}

	writeJSON(w, http.StatusCreated, option)
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	userHandler *UserHandler,
	pollHandler *PollHandler,
	voteHandler *VoteHandler,
	likeHandler *LikeHandler,
	wsHandler *WSHandler,
	auth *AuthMiddleware,
	limiter *RateLimiter,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Hello from quickpoll"})
	})

	r.Route("/user", func(r chi.Router) {
		r.With(limiter.Limit).Post("/register", userHandler.Register)
		r.With(limiter.Limit).Post("/login", userHandler.Login)
		r.With(auth.Authenticate).Get("/me", userHandler.Me)
	})

	r.Route("/polls", func(r chi.Router) {
		r.Get("/", pollHandler.ListPolls)
		r.Get("/{id}", pollHandler.GetPoll)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/create", pollHandler.CreatePoll)
			r.Post("/{id}/like", likeHandler.ToggleLike)
			r.Post("/{id}/options", pollHandler.AddOption)
			r.Post("/{id}/options/{optionID}/vote", voteHandler.ToggleVote)
		})
	})

	r.Get("/ws", wsHandler.Serve)

	return r
}

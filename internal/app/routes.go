package app

import (
	"github.com/vancomm/deduction-engine/internal/handlers"
)

func (a *App) loadRoutes() {
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)
	puzzles := handlers.NewPuzzleHandler(a.logger, a.db, a.ws)
	leaderboard := handlers.NewLeaderboard(a.logger, a.db)

	a.router.HandleFunc("GET /status", auth.Status)
	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)

	a.router.HandleFunc("GET /highscores", leaderboard.Fetch)

	a.router.HandleFunc("POST /puzzles/{puzzleId}/sessions", puzzles.NewSession)
	a.router.HandleFunc("GET /sessions/{id}", puzzles.Fetch)
	a.router.HandleFunc("POST /sessions/{id}/place", puzzles.Place)
	a.router.HandleFunc("POST /sessions/{id}/hint", puzzles.Hint)
	a.router.HandleFunc("POST /sessions/{id}/solve", puzzles.Solve)
	a.router.HandleFunc("GET /sessions/{id}/debug", puzzles.Debug)
	a.router.HandleFunc("/sessions/{id}/connect", puzzles.ConnectWS)
}

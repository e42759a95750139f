package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
)

const maxGamesLimit = 100

var ErrInvalidLimit = errors.New("limit must be an integer between 1 and 100")

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	ListPlayers(w http.ResponseWriter, r *http.Request)
	PlayerStats(w http.ResponseWriter, r *http.Request)
	PlayerGames(w http.ResponseWriter, r *http.Request)
}

type statsUseCase interface {
	PlayerStatistics(ctx context.Context, name string) (*entity.Player, entity.Statistics, error)
	PlayerGames(ctx context.Context, name string, limit int) (*entity.Player, []*entity.GameResult, error)
	Players(ctx context.Context) ([]*entity.Player, error)
}

type handlers struct {
	logger *slog.Logger
	stats  statsUseCase
}

func NewHandlers(logger *slog.Logger, stats statsUseCase) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		stats:  stats,
	}
}

type playersResponse struct {
	Players []*entity.Player `json:"players"`
}

type statsResponse struct {
	Player     *entity.Player    `json:"player"`
	Statistics entity.Statistics `json:"statistics"`
}

type gamesResponse struct {
	Player *entity.Player       `json:"player"`
	Games  []*entity.GameResult `json:"games"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := that.stats.Players(r.Context())
	if err != nil {
		that.writeError(w, "ListPlayers", err)
		return
	}

	if players == nil {
		players = []*entity.Player{}
	}

	that.writeJSON(w, http.StatusOK, playersResponse{Players: players})
}

func (that *handlers) PlayerStats(w http.ResponseWriter, r *http.Request) {
	player, stats, err := that.stats.PlayerStatistics(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		that.writeError(w, "PlayerStats", err)
		return
	}

	that.writeJSON(w, http.StatusOK, statsResponse{Player: player, Statistics: stats})
}

func (that *handlers) PlayerGames(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		that.writeError(w, "PlayerGames", err)
		return
	}

	player, games, err := that.stats.PlayerGames(r.Context(), chi.URLParam(r, "name"), limit)
	if err != nil {
		that.writeError(w, "PlayerGames", err)
		return
	}

	if games == nil {
		games = []*entity.GameResult{}
	}

	that.writeJSON(w, http.StatusOK, gamesResponse{Player: player, Games: games})
}

// parseLimit - an empty value means the default limit.
func parseLimit(value string) (int, error) {
	if value == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(value)
	if err != nil || limit < 1 || limit > maxGamesLimit {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLimit, value)
	}

	return limit, nil
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, repository.ErrPlayerNotFound):
		status = http.StatusNotFound
		err = repository.ErrPlayerNotFound
	case errors.Is(err, ErrInvalidLimit):
		status = http.StatusBadRequest
	default:
		that.logger.With("method", method).Error("request failed", "error", err)
		err = errors.New("internal server error")
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/fairjack/fairjack-be/internal/db"
	"github.com/fairjack/fairjack-be/internal/game"
	"github.com/fairjack/fairjack-be/internal/store"
)

const defaultStartingBalance = 1000

// Handlers contains all the API handlers.
type Handlers struct {
	store    store.Store
	database *db.Database // optional round-history persistence
	hub      *Hub
	logger   *log.Logger

	// Actions are serialized per session: the engine does read-modify-save
	// with no compare-and-swap, so concurrent requests for the same
	// session would lose updates without this.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(store store.Store, database *db.Database, hub *Hub, logger *log.Logger) *Handlers {
	return &Handlers{
		store:    store,
		database: database,
		hub:      hub,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// RegisterRoutes registers all API routes.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/session/new", h.NewSession).Methods("POST")
	r.HandleFunc("/api/session/{id}", h.GetSession).Methods("GET")
	r.HandleFunc("/api/session/{id}/bet", h.PlaceBet).Methods("POST")
	r.HandleFunc("/api/session/{id}/hit", h.Hit).Methods("POST")
	r.HandleFunc("/api/session/{id}/stand", h.Stand).Methods("POST")
	r.HandleFunc("/api/session/{id}/next", h.NextRound).Methods("POST")
	r.HandleFunc("/api/session/{id}/verify", h.Verify).Methods("GET")
	r.HandleFunc("/api/session/{id}/history", h.History).Methods("GET")
	r.HandleFunc("/api/session/{id}/stats", h.Stats).Methods("GET")

	r.HandleFunc("/ws", h.hub.WebSocketHandler)
}

func (h *Handlers) sessionLock(id string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.locks[id]
	if !ok {
		l = &sync.Mutex{}
		h.locks[id] = l
	}
	return l
}

// response sends a JSON response.
func response(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

// expiredResponse renders the neutral default view for a missing session.
// Game-rule conditions never become HTTP errors: the client renders the
// view and its message directly.
func expiredResponse(w http.ResponseWriter) {
	response(w, http.StatusOK, game.DefaultView("Session expired. Start a new game to keep playing."))
}

// NewSession creates a fresh session in the betting state.
func (h *Handlers) NewSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Balance int `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Balance <= 0 {
		req.Balance = defaultStartingBalance
	}

	sess := game.NewSession(req.Balance)
	if err := h.store.SaveSession(sess); err != nil {
		h.logger.Error("failed to save new session", "err", err)
		errorResponse(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.logger.Info("session created", "session", sess.ID, "balance", sess.Balance)
	response(w, http.StatusCreated, sess.CurrentView())
}

// GetSession returns the current view of a session.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sess, err := h.store.GetSession(id)
	if err != nil {
		expiredResponse(w)
		return
	}

	response(w, http.StatusOK, sess.CurrentView())
}

// PlaceBet debits the stake and deals the opening hands.
func (h *Handlers) PlaceBet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lock := h.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := h.store.GetSession(id)
	if err != nil {
		expiredResponse(w)
		return
	}

	if err := sess.PlaceBet(req.Amount); err != nil {
		h.rejectedResponse(w, sess, "bet", err)
		return
	}

	if err := h.store.SaveSession(sess); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to update session")
		return
	}

	h.logger.Info("bet placed", "session", sess.ID, "bet", sess.Bet, "balance", sess.Balance)

	view := sess.Project(game.ViewOptions{InitialDeal: true, HideDealerExceptFirst: true})
	h.hub.BroadcastView(sess.ID, view)
	response(w, http.StatusOK, view)
}

// Hit deals the player a card; on bust the round settles immediately.
func (h *Handlers) Hit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	lock := h.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := h.store.GetSession(id)
	if err != nil {
		expiredResponse(w)
		return
	}

	if err := sess.Hit(); err != nil {
		h.rejectedResponse(w, sess, "hit", err)
		return
	}

	if err := h.store.SaveSession(sess); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to update session")
		return
	}

	h.logger.Info("hit", "session", sess.ID, "state", sess.State, "result", sess.Result)
	h.recordRound(sess)

	view := sess.Project(game.ViewOptions{
		MarkNewCard:           true,
		HideDealerExceptFirst: sess.State == game.StatePlaying,
	})
	h.hub.BroadcastView(sess.ID, view)
	response(w, http.StatusOK, view)
}

// Stand plays out the dealer and settles the round. The response carries
// every dealer-turn snapshot so the client can animate the draws; each
// snapshot is also broadcast to websocket subscribers in order.
func (h *Handlers) Stand(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	lock := h.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := h.store.GetSession(id)
	if err != nil {
		expiredResponse(w)
		return
	}

	steps, err := sess.Stand()
	if err != nil {
		h.rejectedResponse(w, sess, "stand", err)
		return
	}

	// The full dealer turn is computed before anything is persisted, so a
	// mid-action failure never leaves a half-played round behind.
	if err := h.store.SaveSession(sess); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to update session")
		return
	}

	h.logger.Info("stand", "session", sess.ID, "result", sess.Result, "balance", sess.Balance)
	h.recordRound(sess)

	for _, step := range steps {
		h.hub.BroadcastView(sess.ID, step)
	}

	response(w, http.StatusOK, map[string]interface{}{
		"steps": steps,
		"view":  steps[len(steps)-1],
	})
}

// NextRound resets the table for a fresh round with fresh seeds.
func (h *Handlers) NextRound(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	lock := h.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := h.store.GetSession(id)
	if err != nil {
		expiredResponse(w)
		return
	}

	if err := sess.NextRound(); err != nil {
		h.rejectedResponse(w, sess, "next", err)
		return
	}

	if err := h.store.SaveSession(sess); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to update session")
		return
	}

	h.logger.Info("new round", "session", sess.ID, "game", sess.ProvablyFair.GameID)

	view := sess.CurrentView()
	h.hub.BroadcastView(sess.ID, view)
	response(w, http.StatusOK, view)
}

// Verify reveals the seeds of a settled round and recomputes the shuffle
// from them, returning the deck in deal order so anyone can compare it to
// the cards that were actually played.
func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sess, err := h.store.GetSession(id)
	if err != nil {
		expiredResponse(w)
		return
	}

	rec := sess.ProvablyFair
	if !rec.Completed {
		view := sess.CurrentView()
		view.Message = "The round is still live; seeds are revealed once it settles."
		response(w, http.StatusOK, view)
		return
	}

	deck := game.NewFairDeck(rec.ServerSeed, rec.ClientSeed, rec.Nonce)
	dealt := make([]game.Card, 0, game.DeckSize)
	for {
		card, ok := deck.Draw()
		if !ok {
			break
		}
		dealt = append(dealt, card)
	}

	response(w, http.StatusOK, map[string]interface{}{
		"gameId":           rec.GameID,
		"serverSeed":       rec.ServerSeed,
		"hashedServerSeed": rec.HashedServerSeed,
		"clientSeed":       rec.ClientSeed,
		"nonce":            rec.Nonce,
		"dealOrder":        dealt,
	})
}

// History returns the session's persisted round transcript.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if h.database == nil {
		errorResponse(w, http.StatusNotFound, "Round history is not enabled")
		return
	}

	rounds, err := h.database.RoundHistory(id)
	if err != nil {
		h.logger.Error("failed to load round history", "session", id, "err", err)
		errorResponse(w, http.StatusInternalServerError, "Error retrieving round history")
		return
	}

	response(w, http.StatusOK, rounds)
}

// Stats returns aggregate statistics over the session's rounds.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if h.database == nil {
		errorResponse(w, http.StatusNotFound, "Round history is not enabled")
		return
	}

	stats, err := h.database.GetSessionStats(id)
	if err != nil {
		h.logger.Error("failed to load session stats", "session", id, "err", err)
		errorResponse(w, http.StatusInternalServerError, "Error retrieving session statistics")
		return
	}

	response(w, http.StatusOK, stats)
}

// rejectedResponse renders a game-rule rejection as a message-bearing view
// of the unchanged session. Unexpected errors still become 500s.
func (h *Handlers) rejectedResponse(w http.ResponseWriter, sess *game.Session, action string, err error) {
	if !errors.Is(err, game.ErrInvalidBet) && !errors.Is(err, game.ErrIllegalTransition) {
		h.logger.Error("action failed", "session", sess.ID, "action", action, "err", err)
		errorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}

	h.logger.Debug("action rejected", "session", sess.ID, "action", action, "state", sess.State, "reason", err)

	view := sess.CurrentView()
	view.Message = err.Error()
	response(w, http.StatusOK, view)
}

// recordRound persists a just-settled round's transcript, if a database is
// configured. Failures are logged, not surfaced; the game result stands
// regardless.
func (h *Handlers) recordRound(sess *game.Session) {
	if h.database == nil || sess.State != game.StateGameOver {
		return
	}

	payout := game.Payout(sess.Bet, sess.Result)
	if err := h.database.SaveRound(sess.ID, sess.ProvablyFair, sess.Bet, sess.Result, payout); err != nil {
		h.logger.Error("failed to record round", "session", sess.ID, "err", err)
	}
}

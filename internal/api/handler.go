package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/amterp/sprintboard/internal/board"
	kanerr "github.com/amterp/sprintboard/internal/errors"
	"github.com/amterp/sprintboard/internal/id"
	"github.com/amterp/sprintboard/internal/model"
	"github.com/amterp/sprintboard/internal/store"
)

// maxBodyBytes caps request bodies. Every payload here is a handful of fields.
const maxBodyBytes = 64 << 10

// BoardResponse is the JSON shape of a board. Card lists are always arrays,
// never null, so clients can iterate without checks.
type BoardResponse struct {
	Name    string           `json:"name"`
	Columns []ColumnResponse `json:"columns"`
}

// ColumnResponse is the JSON shape of a column.
type ColumnResponse struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Cards []model.Card `json:"cards"`
}

func toBoardResponse(b model.Board) BoardResponse {
	resp := BoardResponse{Name: b.Name, Columns: make([]ColumnResponse, len(b.Columns))}
	for i, col := range b.Columns {
		cards := col.Cards
		if cards == nil {
			cards = []model.Card{}
		}
		resp.Columns[i] = ColumnResponse{ID: col.ID, Title: col.Title, Cards: cards}
	}
	return resp
}

// Handler contains all HTTP handlers for the API.
//
// Single session: the Handler shares one BoardStore with the WebSocket hub,
// and every request works against that one board.
type Handler struct {
	boards  *store.BoardStore
	counter *store.CounterStore
	ids     id.Generator
	log     *logrus.Entry
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(boards *store.BoardStore, counter *store.CounterStore, ids id.Generator) *Handler {
	return &Handler{
		boards:  boards,
		counter: counter,
		ids:     ids,
		log:     logrus.WithField("component", "handler"),
	}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Board routes
	mux.HandleFunc("GET /api/v1/board", h.GetBoard)
	mux.HandleFunc("POST /api/v1/gestures", h.ApplyGesture)

	// Card routes
	mux.HandleFunc("POST /api/v1/columns/{column}/cards", h.CreateCard)
	mux.HandleFunc("PATCH /api/v1/columns/{column}/cards/{id}", h.EditCard)
	mux.HandleFunc("DELETE /api/v1/columns/{column}/cards/{id}", h.DeleteCard)

	// Counter routes
	mux.HandleFunc("GET /api/v1/counter", h.GetCounter)
	mux.HandleFunc("POST /api/v1/counter/increment", h.IncrementCounter)
}

// --- Board Handlers ---

// GetBoard returns the current board.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, toBoardResponse(h.boards.Current()))
}

// ApplyGesture applies a drag-end payload. A cancelled gesture is accepted
// and leaves the board as it was.
func (h *Handler) ApplyGesture(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		BadRequest(w, "request body too large")
		return
	}

	gesture, err := decodeDragEnd(data)
	if err != nil {
		Error(w, err)
		return
	}

	h.dispatch(w, board.Drag{Gesture: gesture})
}

// --- Card Handlers ---

// CreateCardRequest is the JSON body for creating a card.
type CreateCardRequest struct {
	ID    string `json:"id,omitempty"` // Optional: generated when omitted
	Title string `json:"title"`
}

// CreateCard appends a card to a column.
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	columnID := r.PathValue("column")

	var req CreateCardRequest
	if err := decodeBody(w, r, &req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	current := h.boards.Current()
	if !current.HasColumn(columnID) {
		Error(w, kanerr.ColumnNotFound(columnID))
		return
	}

	cardID := req.ID
	if cardID == "" {
		cardID = id.Unique(h.ids, current.HasCard)
	}
	card := model.Card{ID: cardID, Title: req.Title}

	if _, err := h.boards.Dispatch(board.Create{ColumnID: columnID, Card: card}); err != nil {
		Error(w, err)
		return
	}

	h.log.WithFields(logrus.Fields{"column": columnID, "card": card.ID}).Info("Created card")
	JSON(w, http.StatusCreated, card)
}

// EditCardRequest is the JSON body for editing a card.
type EditCardRequest struct {
	Title *string `json:"title"`
}

// EditCard replaces a card's title. Editing a card that is not in the column
// leaves the board unchanged.
func (h *Handler) EditCard(w http.ResponseWriter, r *http.Request) {
	columnID := r.PathValue("column")
	cardID := r.PathValue("id")

	var req EditCardRequest
	if err := decodeBody(w, r, &req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if req.Title == nil {
		BadRequest(w, "title is required")
		return
	}

	h.dispatch(w, board.Edit{ColumnID: columnID, Card: model.Card{ID: cardID, Title: *req.Title}})
}

// DeleteCard removes a card. Deleting a missing card succeeds.
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, board.Delete{ColumnID: r.PathValue("column"), CardID: r.PathValue("id")})
}

// --- Counter Handlers ---

// CounterResponse is the JSON response for the counter.
type CounterResponse struct {
	Value int `json:"value"`
}

// GetCounter returns the counter value.
func (h *Handler) GetCounter(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, CounterResponse{Value: h.counter.Value()})
}

// IncrementCounter adds one to the counter.
func (h *Handler) IncrementCounter(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, CounterResponse{Value: h.counter.Increment()})
}

// dispatch applies an action and writes the resulting board.
func (h *Handler) dispatch(w http.ResponseWriter, a board.Action) {
	next, err := h.boards.Dispatch(a)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, toBoardResponse(next))
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(target)
}

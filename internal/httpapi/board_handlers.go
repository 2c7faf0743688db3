package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"boardhub.org/internal/board"
)

type createBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type updateBoardRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (a *API) CreateBoard(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := a.requireIdentity(w, r)
	if !ok {
		return
	}
	var req createBoardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}

	b, err := a.boards.Create(r.Context(), requesterID, req.Name, req.Description)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"resource": b})
}

func (a *API) ListBoards(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := a.requireIdentity(w, r)
	if !ok {
		return
	}
	boards, err := a.boards.List(r.Context(), requesterID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if boards == nil {
		boards = []*board.Board{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"resources": boards})
}

func (a *API) GetBoard(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := a.requireIdentity(w, r)
	if !ok {
		return
	}
	b, err := a.boards.Get(r.Context(), requesterID, chi.URLParam(r, "boardID"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resource": b})
}

func (a *API) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := a.requireIdentity(w, r)
	if !ok {
		return
	}
	var req updateBoardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}

	b, err := a.boards.Update(r.Context(), requesterID, chi.URLParam(r, "boardID"), board.BoardUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resource": b})
}

func (a *API) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := a.requireIdentity(w, r)
	if !ok {
		return
	}
	if err := a.boards.Delete(r.Context(), requesterID, chi.URLParam(r, "boardID")); err != nil {
		writeAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

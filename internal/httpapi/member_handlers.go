package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"boardhub.org/internal/board"
)

type inviteMemberRequest struct {
	IdentityID string `json:"identityId"`
	Role       string `json:"role,omitempty"`
}

type updateMemberRequest struct {
	Role string `json:"role"`
}

func (a *API) InviteMember(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := a.requireIdentity(w, r)
	if !ok {
		return
	}
	var req inviteMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	if req.IdentityID == "" {
		writeError(w, http.StatusBadRequest, "identityId is required")
		return
	}

	role := board.RoleMember
	if req.Role != "" {
		parsed, err := board.ParseRole(req.Role)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		role = parsed
	}

	m, err := a.boards.Invite(r.Context(), requesterID, chi.URLParam(r, "boardID"), req.IdentityID, role)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"member": m})
}

func (a *API) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := a.requireIdentity(w, r)
	if !ok {
		return
	}
	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	role, err := board.ParseRole(req.Role)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	m, err := a.boards.UpdateMemberRole(r.Context(), requesterID,
		chi.URLParam(r, "boardID"), chi.URLParam(r, "memberID"), role)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"member": m})
}

func (a *API) RemoveMember(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := a.requireIdentity(w, r)
	if !ok {
		return
	}
	if err := a.boards.RemoveMember(r.Context(), requesterID,
		chi.URLParam(r, "boardID"), chi.URLParam(r, "memberID")); err != nil {
		writeAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

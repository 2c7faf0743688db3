package httpapi

import (
	"net/http"
)

type credentialsRequest struct {
	Email       string `json:"email"`
	Secret      string `json:"secret"`
	DisplayName string `json:"displayName,omitempty"`
}

func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}

	session, err := a.identities.Register(r.Context(), req.Email, req.Secret, req.DisplayName)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"identity": session.Identity,
		"token":    session.Token,
	})
}

func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}

	session, err := a.identities.Login(r.Context(), req.Email, req.Secret)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"identity": session.Identity,
		"token":    session.Token,
	})
}

func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	identityID, ok := a.requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := a.identities.Me(r.Context(), identityID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"identity": id})
}

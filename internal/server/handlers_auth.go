package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-builder/internal/types"
)

// handleRegister creates an account and signs the session into it. Register
// behaves like a first login: the guest document migrates into the new
// (empty) account scope.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ident, err := s.users.Register(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.completeSignIn(w, r, ident)
}

// handleLogin authenticates credentials and signs the session in.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ident, err := s.users.Login(r.Context(), &req)
	if err != nil {
		// Authentication failed: the transition is simply not taken.
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.completeSignIn(w, r, ident)
}

// completeSignIn runs the identity transition and then loads the account
// scope's document. The transition fully completes before the load is
// issued.
func (s *Server) completeSignIn(w http.ResponseWriter, r *http.Request, ident *types.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	migrated, err := s.identCtl.SignIn(r.Context(), ident)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.docCtl.Load(r.Context(), s.identCtl.Scope()); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := s.jwt.GenerateToken(ident.Email, ident.Name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.LoginResponse{
		Identity:          ident,
		Token:             token,
		GuestDataMigrated: migrated,
	})
}

// handleLogout snapshots the working copy into guest scope, clears the
// account slots, and reloads the guest document.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.identCtl.SignOut(r.Context(), s.docCtl.Document(), s.docCtl.Template()); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.docCtl.Load(r.Context(), s.identCtl.Scope()); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// handleGetSession reports the identity state and advisory UI flags.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ident := s.identCtl.Identity()
	scope := s.identCtl.Scope()
	s.mu.Unlock()

	dismissed, err := s.identCtl.BannerDismissed(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"authenticated":    ident != nil,
		"identity":         ident,
		"scope":            scope,
		"banner_dismissed": dismissed,
	})
}

// handleDismissBanner sets the guest-banner-dismissed flag.
func (s *Server) handleDismissBanner(w http.ResponseWriter, r *http.Request) {
	if err := s.identCtl.DismissBanner(r.Context()); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "dismissed"})
}

// handleUpdateProfile replaces the identity attributes on the credential
// record, the in-memory identity, and its persisted slot.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.identCtl.Identity()
	if current == nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ident, err := s.users.UpdateProfile(r.Context(), current.Email, &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.identCtl.UpdateProfile(r.Context(), ident); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwt.GenerateToken(ident.Email, ident.Name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.LoginResponse{Identity: ident, Token: token})
}

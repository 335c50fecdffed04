package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/avolkov/passvault/internal/server/services"
	"github.com/avolkov/passvault/internal/vaulterr"
)

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return vaulterr.Validation("invalid request body")
	}
	return nil
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, err, "sign up failed")
		return
	}

	user, err := s.users.Register(r.Context(), services.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		VaultKey:  req.Key,
	})
	if err != nil {
		s.logger.Error(r.Context(), "signup failed", "error", err.Error())
		sendError(w, err, "sign up failed")
		return
	}

	s.logger.Info(r.Context(), "user registered", "userId", user.ID)
	sendSuccess(w, "Sign up was successful!", nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, err, "login failed")
		return
	}

	token, user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Warn(r.Context(), "login failed", "error", err.Error())
		sendError(w, err, "login failed")
		return
	}

	s.logger.Info(r.Context(), "user logged in", "userId", user.ID)
	sendSuccess(w, "Login was successful!", map[string]string{"token": token})
}

func (s *Server) handleSavePassword(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principalFromContext(r.Context())
	if !ok {
		sendError(w, vaulterr.Unauthorized("no authenticated user"), "save password failed")
		return
	}

	var req savePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, err, "save password failed")
		return
	}

	row, err := s.vault.CreateCredential(r.Context(), services.CreateCredentialRequest{
		OwnerID:  ownerID,
		VaultKey: req.Key,
		URL:      req.URL,
		Login:    req.Login,
		Secret:   req.Password,
		Label:    req.Label,
	})
	if err != nil {
		s.logger.Error(r.Context(), "save password failed", "userId", ownerID, "error", err.Error())
		sendError(w, err, "save password failed")
		return
	}

	s.logger.Info(r.Context(), "password saved", "userId", ownerID, "credentialId", row.ID)
	sendSuccess(w, "Password was saved successfully!", toCredentialBody(row))
}

func (s *Server) handleListSavedPasswords(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principalFromContext(r.Context())
	if !ok {
		sendError(w, vaulterr.Unauthorized("no authenticated user"), "list passwords failed")
		return
	}

	var req listSavedPasswordsRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, err, "list passwords failed")
		return
	}

	rows, err := s.vault.ListOwnedCredentials(r.Context(), ownerID, req.Key)
	if err != nil {
		s.logger.Error(r.Context(), "list passwords failed", "userId", ownerID, "error", err.Error())
		sendError(w, err, "list passwords failed")
		return
	}

	data := make([]credentialBody, 0, len(rows))
	for _, row := range rows {
		data = append(data, toCredentialBody(row))
	}
	sendSuccess(w, "Passwords retrieved successfully!", data)
}

func (s *Server) handleSharePassword(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principalFromContext(r.Context())
	if !ok {
		sendError(w, vaulterr.Unauthorized("no authenticated user"), "share password failed")
		return
	}

	var req sharePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, err, "share password failed")
		return
	}

	row, err := s.vault.ShareCredential(r.Context(), services.ShareCredentialRequest{
		OwnerID:        ownerID,
		VaultKey:       req.Key,
		RecipientEmail: req.SharedToEmail,
		CredentialID:   req.PasswordID,
	})
	if err != nil {
		s.logger.Error(r.Context(), "share password failed", "userId", ownerID, "error", err.Error())
		sendError(w, err, "share password failed")
		return
	}

	s.logger.Info(r.Context(), "password shared", "userId", ownerID, "credentialId", row.ID)
	sendSuccess(w, "Password was shared successfully!", toCredentialBody(row))
}

func (s *Server) handleListSharedPasswords(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principalFromContext(r.Context())
	if !ok {
		sendError(w, vaulterr.Unauthorized("no authenticated user"), "list shared passwords failed")
		return
	}

	result, err := s.vault.ListShares(r.Context(), ownerID)
	if err != nil {
		s.logger.Error(r.Context(), "list shared passwords failed", "userId", ownerID, "error", err.Error())
		sendError(w, err, "list shared passwords failed")
		return
	}

	sendSuccess(w, "Shared passwords retrieved successfully!", listSharesBody{
		SharedByOwner:   toSharedCredentialBodies(result.SharedByOwner),
		SharedWithOwner: toSharedCredentialBodies(result.SharedWithOwner),
	})
}

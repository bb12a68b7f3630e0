package server

import (
	"errors"
	"net/http"

	"github.com/HadiRehman/NLSA-USA/internal/domain"
	"github.com/HadiRehman/NLSA-USA/internal/service"

	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
	Token   string `json:"token"`
}

type logoutRequest struct {
	Token string `json:"token"`
}

type countResponse struct {
	Number int `json:"number"`
}

func (s *Server) addUser(w http.ResponseWriter, r *http.Request) {
	var in service.NewUser
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if _, err := s.users.AddUser(r.Context(), in); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "User added successfully")
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if len(users) == 0 {
		respondMessage(w, http.StatusNotFound, "No users found")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	res, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{
		Message: "User Authenticated successfully",
		Role:    res.User.Role,
		Token:   res.Token,
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	n, err := s.users.Logout(r.Context(), req.Token)
	if errors.Is(err, domain.ErrNotFound) {
		respondMessage(w, http.StatusOK, "Value expired")
		return
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, countResponse{Number: n})
}

func (s *Server) activeUsers(w http.ResponseWriter, r *http.Request) {
	n, err := s.users.ActiveSessions(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, countResponse{Number: n})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var in service.UserUpdate
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	err := s.users.UpdateUser(r.Context(), in)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, "Password not match")
	case errors.Is(err, domain.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "User not found")
	case err != nil:
		respondError(w, r, err)
	default:
		respondMessage(w, http.StatusOK, "User Profile Updated Successfully.")
	}
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "User Deleted Successfully.")
}

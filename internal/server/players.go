package server

import (
	"net/http"

	"github.com/HadiRehman/NLSA-USA/internal/domain"

	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type createdResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type updatedResponse struct {
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

func (s *Server) upsertPlayer(w http.ResponseWriter, r *http.Request) {
	var in domain.PlayerPatch
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	res, err := s.players.Upsert(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if res.Created {
		respondJSON(w, http.StatusCreated, createdResponse{Message: "Player added successfully", ID: res.Player.ID})
		return
	}
	respondJSON(w, http.StatusOK, updatedResponse{Message: "Player updated successfully", Warning: res.Warning})
}

func (s *Server) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.players.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if players == nil {
		players = []domain.Player{}
	}
	respondJSON(w, http.StatusOK, players)
}

func (s *Server) deletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := s.players.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Player deleted successfully")
}

func (s *Server) viewCertificate(w http.ResponseWriter, r *http.Request) {
	pdf, filename, err := s.players.Certificate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondFile(w, "application/pdf", "inline", filename, pdf)
}

type sendCertificateRequest struct {
	PlayerID string `json:"playerId"`
}

func (s *Server) sendCertificate(w http.ResponseWriter, r *http.Request) {
	var req sendCertificateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.PlayerID == "" {
		respondError(w, r, &domain.ValidationError{Reason: "all fields required", Fields: []string{"playerId"}})
		return
	}

	if err := s.players.SendCertificate(r.Context(), req.PlayerID); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Certificate sent successfully")
}

func (s *Server) sendAllCertificates(w http.ResponseWriter, r *http.Request) {
	res, err := s.players.SendAllCertificates(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Certificates processed",
		"sent":    res.Sent,
		"failed":  res.Failed,
		"skipped": res.Skipped,
	})
}

func (s *Server) exportPlayers(w http.ResponseWriter, r *http.Request) {
	data, err := s.players.ExportRoster(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondFile(w, xlsxContentType, "attachment", "players.xlsx", data)
}

package domain

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Player struct {
	ID            string    `json:"Id"`
	SportCategory string    `json:"SportCategory"`
	PlayerName    string    `json:"PlayerName"`
	EventName     string    `json:"EventName"`
	EventDate     string    `json:"EventDate"`
	CityLocation  string    `json:"CityLocation"`
	Email         string    `json:"Email"`
	JerseyNumber  string    `json:"JerseyNumber"`
	DocumentFile  *string   `json:"DocumentFile"`
	VideoFile     *string   `json:"VideoFile"`
	Status        Status    `json:"Status"`
	Stats         Stats     `json:"stats"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type User struct {
	ID           string    `json:"Id"`
	Role         string    `json:"Role"`
	Name         string    `json:"Name"`
	Email        string    `json:"Email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

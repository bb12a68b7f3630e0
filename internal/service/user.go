package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/config"
	"github.com/HadiRehman/NLSA-USA/internal/constants"
	"github.com/HadiRehman/NLSA-USA/internal/domain"
	"github.com/HadiRehman/NLSA-USA/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users      UserStore
	sessions   SessionStore
	sessionTTL time.Duration
	metrics    *metrics.Metrics
	now        func() time.Time
	logger     zerolog.Logger
}

func NewUserService(cfg *config.Config, users UserStore, sessions SessionStore, m *metrics.Metrics, logger zerolog.Logger) *UserService {
	return &UserService{
		users:      users,
		sessions:   sessions,
		sessionTTL: cfg.SessionTTL,
		metrics:    m,
		now:        time.Now,
		logger:     logger,
	}
}

type NewUser struct {
	Role     string `json:"Role"`
	Name     string `json:"Name"`
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

type UserUpdate struct {
	ID          string `json:"Id"`
	Name        string `json:"Name"`
	Email       string `json:"Email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

func (s *UserService) AddUser(ctx context.Context, in NewUser) (*domain.User, error) {
	if err := requireFields(map[string]string{
		"Role": in.Role, "Name": in.Name, "Email": in.Email, "Password": in.Password,
	}, "Role", "Name", "Email", "Password"); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByName(ctx, in.Name); err == nil {
		return nil, domain.ErrDuplicate
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), constants.PasswordCost)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, &domain.User{
		Role:         in.Role,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("user added")
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Login checks credentials and opens a session that expires after the
// configured TTL.
func (s *UserService) Login(ctx context.Context, name, password string) (*LoginResult, error) {
	if err := requireFields(map[string]string{"Username": name, "Password": password}, "Username", "Password"); err != nil {
		return nil, err
	}

	u, err := s.users.GetByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		s.metrics.Logins.WithLabelValues("denied").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		s.metrics.Logins.WithLabelValues("denied").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	sess := domain.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Start(ctx, sess); err != nil {
		return nil, err
	}

	s.metrics.Logins.WithLabelValues("ok").Inc()
	s.logger.Info().Str("user_id", u.ID).Msg("user logged in")
	return &LoginResult{User: u, Token: sess.Token, ExpiresAt: sess.ExpiresAt}, nil
}

// Logout ends the session and returns the remaining active count. An
// unknown or already expired token yields domain.ErrNotFound.
func (s *UserService) Logout(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, domain.ErrNotFound
	}
	if err := s.sessions.End(ctx, token, s.now()); err != nil {
		return 0, err
	}
	return s.sessions.Active(ctx, s.now())
}

func (s *UserService) ActiveSessions(ctx context.Context) (int, error) {
	return s.sessions.Active(ctx, s.now())
}

// PurgeSessions drops expired sessions; called by the scheduler.
func (s *UserService) PurgeSessions(ctx context.Context) (int, error) {
	return s.sessions.Purge(ctx, s.now())
}

// UpdateUser changes name and email, and the password when both the old and
// the new one are supplied.
func (s *UserService) UpdateUser(ctx context.Context, in UserUpdate) error {
	if err := requireFields(map[string]string{"Id": in.ID, "Name": in.Name, "Email": in.Email}, "Id", "Name", "Email"); err != nil {
		return err
	}

	u, err := s.users.Get(ctx, in.ID)
	if err != nil {
		return err
	}

	if other, err := s.users.GetByName(ctx, in.Name); err == nil && other.ID != in.ID {
		return domain.ErrDuplicate
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	u.Name = in.Name
	u.Email = in.Email

	switch {
	case in.OldPassword == "" && in.NewPassword == "":
	case in.OldPassword == "" || in.NewPassword == "":
		return &domain.ValidationError{Reason: "Old and new passwords are required to change password"}
	default:
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.OldPassword)) != nil {
			return domain.ErrInvalidCredentials
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), constants.PasswordCost)
		if err != nil {
			return err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", u.ID).Msg("user updated")
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func requireFields(values map[string]string, order ...string) error {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &domain.ValidationError{Reason: "all fields required", Fields: missing}
}

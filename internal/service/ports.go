package service

import (
	"context"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/domain"
	"github.com/HadiRehman/NLSA-USA/internal/notify"
)

type PlayerStore interface {
	Create(ctx context.Context, p *domain.Player) (*domain.Player, error)
	Get(ctx context.Context, id string) (*domain.Player, error)
	List(ctx context.Context) ([]domain.Player, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Player, error)
	Update(ctx context.Context, id string, delta domain.ProfileDelta, stats domain.Stats) (*domain.Player, error)
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

type SessionStore interface {
	Start(ctx context.Context, s domain.Session) error
	End(ctx context.Context, token string, now time.Time) error
	Active(ctx context.Context, now time.Time) (int, error)
	Purge(ctx context.Context, now time.Time) (int, error)
}

type Notifier interface {
	Dispatch(ctx context.Context, t domain.Transition, p domain.Player, recipient string) (notify.Kind, error)
	SendCertificate(ctx context.Context, p domain.Player, recipient string) error
}

type CertificateRenderer interface {
	Render(p domain.Player) ([]byte, error)
	Filename(p domain.Player) string
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/domain"
	"github.com/HadiRehman/NLSA-USA/internal/notify"
)

type memPlayers struct {
	mu      sync.Mutex
	byID    map[string]domain.Player
	seq     int
	writes  int
	GetFunc func(ctx context.Context, id string) (*domain.Player, error)
}

func newMemPlayers(seed ...domain.Player) *memPlayers {
	m := &memPlayers{byID: map[string]domain.Player{}}
	for _, p := range seed {
		m.byID[p.ID] = p
	}
	return m
}

func (m *memPlayers) Create(_ context.Context, p *domain.Player) (*domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.writes++
	c := *p
	c.ID = fmt.Sprintf("p%d", m.seq)
	c.CreatedAt = time.Now()
	m.byID[c.ID] = c
	return &c, nil
}

func (m *memPlayers) Get(ctx context.Context, id string) (*domain.Player, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Stats = p.Stats.Clone()
	return &p, nil
}

func (m *memPlayers) List(context.Context) ([]domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Player{}
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

func (m *memPlayers) ListByStatus(_ context.Context, s domain.Status) ([]domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Player{}
	for _, p := range m.byID {
		if p.Status == s {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPlayers) Update(_ context.Context, id string, delta domain.ProfileDelta, stats domain.Stats) (*domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.writes++
	delta.Apply(&p)
	p.Stats = stats
	m.byID[id] = p
	return &p, nil
}

func (m *memPlayers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type dispatchCall struct {
	t         domain.Transition
	player    domain.Player
	recipient string
}

type fakeNotifier struct {
	mu                  sync.Mutex
	DispatchFunc        func(ctx context.Context, t domain.Transition, p domain.Player, recipient string) (notify.Kind, error)
	SendCertificateFunc func(ctx context.Context, p domain.Player, recipient string) error
	dispatched          []dispatchCall
	certificates        []string
}

func (f *fakeNotifier) Dispatch(ctx context.Context, t domain.Transition, p domain.Player, recipient string) (notify.Kind, error) {
	f.mu.Lock()
	f.dispatched = append(f.dispatched, dispatchCall{t: t, player: p, recipient: recipient})
	f.mu.Unlock()
	if f.DispatchFunc != nil {
		return f.DispatchFunc(ctx, t, p, recipient)
	}
	return notify.KindFor(t), nil
}

func (f *fakeNotifier) SendCertificate(ctx context.Context, p domain.Player, recipient string) error {
	f.mu.Lock()
	f.certificates = append(f.certificates, p.ID)
	f.mu.Unlock()
	if f.SendCertificateFunc != nil {
		return f.SendCertificateFunc(ctx, p, recipient)
	}
	if recipient == "" {
		return notify.ErrNoRecipient
	}
	return nil
}

type fakeRenderer struct{}

func (fakeRenderer) Render(p domain.Player) ([]byte, error) { return []byte("%PDF-" + p.ID), nil }

func (fakeRenderer) Filename(p domain.Player) string { return "certificate-" + p.ID + ".pdf" }

type memUsers struct {
	byID map[string]domain.User
	seq  int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]domain.User{}} }

func (m *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	m.seq++
	c := *u
	c.ID = fmt.Sprintf("u%d", m.seq)
	m.byID[c.ID] = c
	return &c, nil
}

func (m *memUsers) Get(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByName(_ context.Context, name string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Name == name {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) List(context.Context) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, u *domain.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memSessions struct {
	byToken map[string]domain.Session
}

func newMemSessions() *memSessions { return &memSessions{byToken: map[string]domain.Session{}} }

func (m *memSessions) Start(_ context.Context, s domain.Session) error {
	m.byToken[s.Token] = s
	return nil
}

func (m *memSessions) End(_ context.Context, token string, now time.Time) error {
	if s, ok := m.byToken[token]; !ok || !s.ExpiresAt.After(now) {
		return domain.ErrNotFound
	}
	delete(m.byToken, token)
	return nil
}

func (m *memSessions) Active(_ context.Context, now time.Time) (int, error) {
	n := 0
	for _, s := range m.byToken {
		if s.ExpiresAt.After(now) {
			n++
		}
	}
	return n, nil
}

func (m *memSessions) Purge(_ context.Context, now time.Time) (int, error) {
	n := 0
	for k, s := range m.byToken {
		if !s.ExpiresAt.After(now) {
			delete(m.byToken, k)
			n++
		}
	}
	return n, nil
}

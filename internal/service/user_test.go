package service

import (
	"context"
	"testing"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/config"
	"github.com/HadiRehman/NLSA-USA/internal/domain"
	"github.com/HadiRehman/NLSA-USA/internal/metrics"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *memSessions) {
	t.Helper()
	sessions := newMemSessions()
	svc := NewUserService(&config.Config{SessionTTL: time.Hour}, newMemUsers(), sessions, metrics.Nop(), zerolog.Nop())
	return svc, sessions
}

func addAdmin(t *testing.T, svc *UserService) *domain.User {
	t.Helper()
	u, err := svc.AddUser(context.Background(), NewUser{Role: "admin", Name: "alex", Email: "alex@example.com", Password: "hunter22"})
	require.NoError(t, err)
	return u
}

func TestAddUser(t *testing.T) {
	svc, _ := newUserService(t)
	u := addAdmin(t, svc)
	assert.NotEqual(t, "hunter22", u.PasswordHash)

	_, err := svc.AddUser(context.Background(), NewUser{Role: "admin", Name: "alex", Email: "x@example.com", Password: "p"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = svc.AddUser(context.Background(), NewUser{Name: "sam"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Role", "Email", "Password"}, ve.Fields)
}

func TestLoginLogout(t *testing.T) {
	svc, _ := newUserService(t)
	addAdmin(t, svc)
	ctx := context.Background()

	_, err := svc.Login(ctx, "alex", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "hunter22")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	first, err := svc.Login(ctx, "alex", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "admin", first.User.Role)
	assert.NotEmpty(t, first.Token)
	_, err = svc.Login(ctx, "alex", "hunter22")
	require.NoError(t, err)

	n, err := svc.ActiveSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.Logout(ctx, first.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = svc.Logout(ctx, first.Token)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionsExpire(t *testing.T) {
	svc, sessions := newUserService(t)
	addAdmin(t, svc)
	ctx := context.Background()

	_, err := svc.Login(ctx, "alex", "hunter22")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	n, err := svc.ActiveSessions(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	purged, err := svc.PurgeSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
	assert.Empty(t, sessions.byToken)
}

func TestLogoutExpiredSession(t *testing.T) {
	svc, sessions := newUserService(t)
	addAdmin(t, svc)
	ctx := context.Background()

	res, err := svc.Login(ctx, "alex", "hunter22")
	require.NoError(t, err)

	svc.now = func() time.Time { return res.ExpiresAt.Add(time.Minute) }
	_, err = svc.Logout(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, sessions.byToken, res.Token, "left for the purge job")
}

func TestUpdateUser(t *testing.T) {
	svc, _ := newUserService(t)
	u := addAdmin(t, svc)
	ctx := context.Background()

	other, err := svc.AddUser(ctx, NewUser{Role: "editor", Name: "bo", Email: "bo@example.com", Password: "pw"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		in      UserUpdate
		wantErr error
	}{
		{"profile only", UserUpdate{ID: u.ID, Name: "alex", Email: "new@example.com"}, nil},
		{"name taken", UserUpdate{ID: u.ID, Name: other.Name, Email: "a@example.com"}, domain.ErrDuplicate},
		{"unknown user", UserUpdate{ID: "nope", Name: "z", Email: "z@example.com"}, domain.ErrNotFound},
		{"wrong old password", UserUpdate{ID: u.ID, Name: "alex", Email: "a@example.com", OldPassword: "bad", NewPassword: "next"}, domain.ErrInvalidCredentials},
		{"password change", UserUpdate{ID: u.ID, Name: "alex", Email: "a@example.com", OldPassword: "hunter22", NewPassword: "next"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpdateUser(ctx, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	_, err = svc.Login(ctx, "alex", "next")
	assert.NoError(t, err)

	err = svc.UpdateUser(ctx, UserUpdate{ID: u.ID, Name: "alex", Email: "a@example.com", NewPassword: "only-new"})
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newUserService(t)
	u := addAdmin(t, svc)

	require.NoError(t, svc.DeleteUser(context.Background(), u.ID))
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), u.ID), domain.ErrNotFound)
}

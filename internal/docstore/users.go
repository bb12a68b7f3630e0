package docstore

import (
	"context"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/domain"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
)

type userDoc struct {
	Role         string    `firestore:"Role"`
	Name         string    `firestore:"Name"`
	Email        string    `firestore:"Email"`
	PasswordHash string    `firestore:"PasswordHash"`
	CreatedAt    time.Time `firestore:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt"`
}

type UserStore struct {
	client *firestore.Client
	logger zerolog.Logger
}

func NewUserStore(client *firestore.Client, logger zerolog.Logger) *UserStore {
	return &UserStore{client: client, logger: logger}
}

func (s *UserStore) col() *firestore.CollectionRef {
	return s.client.Collection(usersCollection)
}

// Create checks name uniqueness and inserts inside one transaction.
func (s *UserStore) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	created := *u
	created.CreatedAt = now
	created.UpdatedAt = now
	ref := s.col().NewDoc()

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		taken, err := tx.Documents(s.col().Where("Name", "==", u.Name).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return domain.ErrDuplicate
		}
		return tx.Create(ref, toUserDoc(&created))
	})
	if err != nil {
		return nil, mapError(err, "failed to create user")
	}
	created.ID = ref.ID
	return &created, nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	snap, err := s.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err, "failed to get user %s", id)
	}
	return fromUserSnap(snap)
}

func (s *UserStore) GetByName(ctx context.Context, name string) (*domain.User, error) {
	snaps, err := s.col().Where("Name", "==", name).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, mapError(err, "failed to get user by name")
	}
	if len(snaps) == 0 {
		return nil, domain.ErrNotFound
	}
	return fromUserSnap(snaps[0])
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	snaps, err := s.col().OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, mapError(err, "failed to list users")
	}
	users := make([]domain.User, 0, len(snaps))
	for _, snap := range snaps {
		u, err := fromUserSnap(snap)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, u *domain.User) error {
	ref := s.col().Doc(u.ID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		taken, err := tx.Documents(s.col().Where("Name", "==", u.Name).Limit(2)).GetAll()
		if err != nil {
			return err
		}
		for _, snap := range taken {
			if snap.Ref.ID != u.ID {
				return domain.ErrDuplicate
			}
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "Name", Value: u.Name},
			{Path: "Email", Value: u.Email},
			{Path: "PasswordHash", Value: u.PasswordHash},
			{Path: "updatedAt", Value: time.Now().UTC()},
		})
	})
	return mapError(err, "failed to update user %s", u.ID)
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	_, err := s.col().Doc(id).Delete(ctx, firestore.Exists)
	return mapError(err, "failed to delete user %s", id)
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		Role:         u.Role,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromUserSnap(snap *firestore.DocumentSnapshot) (*domain.User, error) {
	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, mapError(err, "failed to decode user %s", snap.Ref.ID)
	}
	return &domain.User{
		ID:           snap.Ref.ID,
		Role:         doc.Role,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"filmorate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_AddUser(t *testing.T) {
	ctx := context.Background()

	t.Run("blank name falls back to login", func(t *testing.T) {
		svc := NewUserService(userRepoWith())
		in := validUser()
		in.Name = "  "
		got, err := svc.AddUser(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "deckard", got.Name)
		assert.Equal(t, uint(1), got.ID)
	})

	t.Run("invalid email", func(t *testing.T) {
		repo := userRepoWith()
		repo.createFn = func(_ context.Context, _ *models.User) error {
			t.Fatal("create must not be called")
			return nil
		}
		svc := NewUserService(repo)

		in := validUser()
		in.Email = "bad-email"
		_, err := svc.AddUser(ctx, in)
		appErr := assertAppError(t, err, models.CodeValidation)
		assert.Contains(t, appErr.Fields, "email")
	})

	t.Run("future birthday", func(t *testing.T) {
		svc := NewUserService(userRepoWith())
		in := validUser()
		in.Birthday = models.DateOf(time.Now().AddDate(1, 0, 0))
		_, err := svc.AddUser(ctx, in)
		appErr := assertAppError(t, err, models.CodeValidation)
		assert.Contains(t, appErr.Fields, "birthday")
	})

	t.Run("login with whitespace", func(t *testing.T) {
		svc := NewUserService(userRepoWith())
		in := validUser()
		in.Login = "rick deckard"
		_, err := svc.AddUser(ctx, in)
		assertAppError(t, err, models.CodeValidation)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	svc := NewUserService(userRepoWith(1))
	_, err := svc.UpdateUser(ctx, validUser())
	assertAppError(t, err, models.CodeValidation)

	repo := userRepoWith(1)
	repo.updateFn = func(_ context.Context, u *models.User) error {
		return models.NewNotFoundError("User", u.ID)
	}
	in := validUser()
	in.ID = 9
	_, err = NewUserService(repo).UpdateUser(ctx, in)
	assertAppError(t, err, models.CodeNotFound)
}

func TestUserService_Friends(t *testing.T) {
	ctx := context.Background()

	t.Run("self friendship rejected before storage", func(t *testing.T) {
		repo := userRepoWith(1)
		repo.existingIDsFn = func(_ context.Context, _ []uint) ([]uint, error) {
			t.Fatal("storage must not be consulted")
			return nil, nil
		}
		svc := NewUserService(repo)

		assertAppError(t, svc.AddFriend(ctx, 1, 1), models.CodeValidation)
		assertAppError(t, svc.RemoveFriend(ctx, 1, 1), models.CodeValidation)
	})

	t.Run("adds one directed edge", func(t *testing.T) {
		repo := userRepoWith(1, 2)
		var edges [][2]uint
		repo.addFriendFn = func(_ context.Context, userID, friendID uint) error {
			edges = append(edges, [2]uint{userID, friendID})
			return nil
		}
		svc := NewUserService(repo)

		require.NoError(t, svc.AddFriend(ctx, 1, 2))
		assert.Equal(t, [][2]uint{{1, 2}}, edges)
	})

	t.Run("unknown friend", func(t *testing.T) {
		svc := NewUserService(userRepoWith(1))
		err := svc.AddFriend(ctx, 1, 8)
		appErr := assertAppError(t, err, models.CodeNotFound)
		assert.Equal(t, "User with ID 8 not found", appErr.Message)
	})

	t.Run("friends of unknown user", func(t *testing.T) {
		svc := NewUserService(userRepoWith(1))
		_, err := svc.GetFriends(ctx, 3)
		assertAppError(t, err, models.CodeNotFound)
	})

	t.Run("common friends", func(t *testing.T) {
		repo := userRepoWith(1, 2, 3)
		repo.getCommonFriendsFn = func(_ context.Context, a, b uint) ([]models.User, error) {
			assert.Equal(t, uint(1), a)
			assert.Equal(t, uint(2), b)
			return []models.User{{ID: 3}}, nil
		}
		svc := NewUserService(repo)

		got, err := svc.GetCommonFriends(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, uint(3), got[0].ID)

		_, err = svc.GetCommonFriends(ctx, 1, 99)
		assertAppError(t, err, models.CodeNotFound)
	})
}

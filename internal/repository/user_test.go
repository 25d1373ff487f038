package repository

import (
	"context"
	"testing"
	"time"

	"filmorate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &models.User{
		Email:    "neo@matrix.io",
		Login:    "neo",
		Name:     "Thomas Anderson",
		Birthday: models.NewDate(1964, time.September, 2),
	}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "neo", got.Login)
	assert.Equal(t, "1964-09-02", got.Birthday.String())

	got.Name = "Neo"
	got.Email = "the.one@matrix.io"
	require.NoError(t, repo.Update(ctx, got))

	reloaded, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Neo", reloaded.Name)
	assert.Equal(t, "the.one@matrix.io", reloaded.Email)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.GetByID(ctx, 42)
	assert.True(t, models.IsNotFound(err))
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	err := repo.Update(context.Background(), &models.User{ID: 77, Email: "x@y.z", Login: "x"})
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
	assert.Equal(t, "User with ID 77 not found", err.Error())

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserRepository_DeletePurgesEdgesAndLikes(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	films := NewFilmRepository(db)
	ctx := context.Background()

	a := mustCreateUser(t, users, "a")
	b := mustCreateUser(t, users, "b")
	c := mustCreateUser(t, users, "c")
	require.NoError(t, users.AddFriend(ctx, a.ID, b.ID))
	require.NoError(t, users.AddFriend(ctx, b.ID, a.ID))
	require.NoError(t, users.AddFriend(ctx, c.ID, b.ID))

	film := newFilm("Matrix", 4)
	require.NoError(t, films.Create(ctx, film))
	require.NoError(t, films.AddLike(ctx, film.ID, b.ID))
	require.NoError(t, films.AddLike(ctx, film.ID, c.ID))

	require.NoError(t, users.Delete(ctx, b.ID))

	var edges int64
	require.NoError(t, db.Model(&models.UserFriend{}).
		Where("user_id = ? OR friend_id = ?", b.ID, b.ID).Count(&edges).Error)
	assert.Zero(t, edges)

	friendsOfA, err := users.GetFriends(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, friendsOfA)

	got, err := films.GetByID(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{c.ID}, got.Likes)

	err = users.Delete(ctx, b.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestUserRepository_FriendshipIsDirected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	a := mustCreateUser(t, repo, "a")
	b := mustCreateUser(t, repo, "b")

	require.NoError(t, repo.AddFriend(ctx, a.ID, b.ID))
	require.NoError(t, repo.AddFriend(ctx, a.ID, b.ID), "repeat add is a no-op")

	friendsOfA, err := repo.GetFriends(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, friendsOfA, 1)
	assert.Equal(t, b.ID, friendsOfA[0].ID)

	friendsOfB, err := repo.GetFriends(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, friendsOfB)
	assert.NotNil(t, friendsOfB)

	require.NoError(t, repo.RemoveFriend(ctx, b.ID, a.ID), "removing an absent edge is a no-op")
	require.NoError(t, repo.RemoveFriend(ctx, a.ID, b.ID))

	friendsOfA, err = repo.GetFriends(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, friendsOfA)
}

func TestUserRepository_CommonFriends(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u1 := mustCreateUser(t, repo, "u1")
	u2 := mustCreateUser(t, repo, "u2")
	u3 := mustCreateUser(t, repo, "u3")
	u4 := mustCreateUser(t, repo, "u4")
	u5 := mustCreateUser(t, repo, "u5")

	// u1 -> {u3, u4, u5}; u2 -> {u4, u5}; u5 -> u3 does not count for u2
	for _, id := range []uint{u5.ID, u3.ID, u4.ID} {
		require.NoError(t, repo.AddFriend(ctx, u1.ID, id))
	}
	require.NoError(t, repo.AddFriend(ctx, u2.ID, u4.ID))
	require.NoError(t, repo.AddFriend(ctx, u2.ID, u5.ID))
	require.NoError(t, repo.AddFriend(ctx, u5.ID, u3.ID))

	common, err := repo.GetCommonFriends(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	require.Len(t, common, 2)
	assert.Equal(t, u4.ID, common[0].ID)
	assert.Equal(t, u5.ID, common[1].ID)

	reverse, err := repo.GetCommonFriends(ctx, u2.ID, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, common, reverse)

	none, err := repo.GetCommonFriends(ctx, u3.ID, u4.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserRepository_ExistingIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	a := mustCreateUser(t, repo, "a")
	b := mustCreateUser(t, repo, "b")

	found, err := repo.ExistingIDs(ctx, []uint{b.ID, 99, a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, found)

	found, err = repo.ExistingIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

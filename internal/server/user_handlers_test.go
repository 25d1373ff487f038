package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"filmorate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	app, deps := newTestApp(t)
	deps.users.On("AddUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Login == "neo" && u.Birthday.String() == "1964-09-02"
	})).Return(&models.User{ID: 1, Email: "neo@matrix.io", Login: "neo", Name: "neo"}, nil)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/users",
		`{"email":"neo@matrix.io","login":"neo","birthday":"1964-09-02"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var got models.User
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "neo", got.Name)
}

func TestCreateUserEmptyBody(t *testing.T) {
	app, _ := newTestApp(t)
	resp, raw := doRequest(t, app, http.MethodPost, "/api/users", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Request body is required", decodeError(t, raw).Error)
}

func TestUpdateUserValidation(t *testing.T) {
	app, deps := newTestApp(t)
	deps.users.On("UpdateUser", mock.Anything, mock.Anything).
		Return(nil, models.NewFieldValidationError(map[string]string{"email": "must be a valid email address"}))

	resp, raw := doRequest(t, app, http.MethodPut, "/api/users", `{"id":1,"email":"bad-email","login":"neo"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, raw).Fields, "email")
}

func TestFriendRoutes(t *testing.T) {
	app, deps := newTestApp(t)
	deps.users.On("AddFriend", mock.Anything, uint(1), uint(2)).Return(nil)
	deps.users.On("AddFriend", mock.Anything, uint(1), uint(1)).
		Return(models.NewValidationError("User cannot add themselves as a friend"))
	deps.users.On("RemoveFriend", mock.Anything, uint(1), uint(2)).Return(nil)
	deps.users.On("GetFriends", mock.Anything, uint(1)).Return([]models.User{{ID: 2, Login: "b"}}, nil)
	deps.users.On("GetCommonFriends", mock.Anything, uint(1), uint(3)).Return([]models.User{}, nil)

	resp, _ := doRequest(t, app, http.MethodPut, "/api/users/1/friends/2", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPut, "/api/users/1/friends/1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, "/api/users/1/friends/2", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/users/1/friends", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var friends []models.User
	require.NoError(t, json.Unmarshal(raw, &friends))
	require.Len(t, friends, 1)
	assert.Equal(t, uint(2), friends[0].ID)

	resp, raw = doRequest(t, app, http.MethodGet, "/api/users/1/friends/common/3", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))

	resp, raw = doRequest(t, app, http.MethodGet, "/api/users/1/friends/common/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid other ID", decodeError(t, raw).Error)
}

func TestDeleteUserNotFound(t *testing.T) {
	app, deps := newTestApp(t)
	deps.users.On("DeleteUser", mock.Anything, uint(8)).Return(models.NewNotFoundError("User", 8))

	resp, _ := doRequest(t, app, http.MethodDelete, "/api/users/8", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

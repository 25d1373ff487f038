package service

import (
	"context"

	"filmorate/internal/models"
	"filmorate/internal/observability"
	"filmorate/internal/repository"
	"filmorate/internal/validation"
)

// UserService provides user and friend-graph business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// AddUser validates and stores a new user, defaulting the name to the login.
func (s *UserService) AddUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validation.ValidateUser(user); err != nil {
		return nil, err
	}
	user.ID = 0
	user.ApplyDefaultName()

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.GlobalLogger.InfoContext(ctx, "user added", "user_id", user.ID)
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validation.ValidateUser(user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, models.NewFieldValidationError(map[string]string{"id": "id is required"})
	}
	user.ApplyDefaultName()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	observability.GlobalLogger.InfoContext(ctx, "user updated", "user_id", user.ID)
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	observability.GlobalLogger.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// AddFriend adds the directed edge userID -> friendID. friendID does not gain userID
// as a friend.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID uint) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "AddFriend",
		observability.UserAttr("user", userID),
		observability.UserAttr("friend", friendID),
	)
	defer func() { observability.EndSpan(span, err) }()

	if userID == friendID {
		return models.NewValidationError("User cannot add themselves as a friend")
	}
	if err := s.ensureUsers(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.userRepo.AddFriend(ctx, userID, friendID); err != nil {
		return err
	}

	observability.GlobalLogger.InfoContext(ctx, "friend added", "user_id", userID, "friend_id", friendID)
	return nil
}

// RemoveFriend deletes the directed edge userID -> friendID only.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID uint) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "RemoveFriend",
		observability.UserAttr("user", userID),
		observability.UserAttr("friend", friendID),
	)
	defer func() { observability.EndSpan(span, err) }()

	if userID == friendID {
		return models.NewValidationError("User cannot remove themselves as a friend")
	}
	if err := s.ensureUsers(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.userRepo.RemoveFriend(ctx, userID, friendID); err != nil {
		return err
	}

	observability.GlobalLogger.InfoContext(ctx, "friend removed", "user_id", userID, "friend_id", friendID)
	return nil
}

// GetFriends returns the users userID has added as friends, ordered by id.
func (s *UserService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	if err := s.ensureUsers(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.GetFriends(ctx, userID)
}

// GetCommonFriends returns the users that both userID and otherID have as friends.
func (s *UserService) GetCommonFriends(ctx context.Context, userID, otherID uint) ([]models.User, error) {
	if err := s.ensureUsers(ctx, userID, otherID); err != nil {
		return nil, err
	}
	return s.userRepo.GetCommonFriends(ctx, userID, otherID)
}

// ensureUsers fails with NotFound for the first id, in argument order, that is not stored.
func (s *UserService) ensureUsers(ctx context.Context, ids ...uint) error {
	found, err := s.userRepo.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}
	present := make(map[uint]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			return models.NewNotFoundError("User", id)
		}
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"filmorate/internal/database"
	"filmorate/internal/models"
	"filmorate/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users and the directed friend graph.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user with every friend edge touching it and every like it gave.
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// ExistingIDs returns the subset of ids that belong to stored users, ascending.
	ExistingIDs(ctx context.Context, ids []uint) ([]uint, error)
	AddFriend(ctx context.Context, userID, friendID uint) error
	RemoveFriend(ctx context.Context, userID, friendID uint) error
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	GetCommonFriends(ctx context.Context, userID, otherID uint) ([]models.User, error)
}

type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger("users")}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.NewConflictError("User already exists")
		}
		return failure(ctx, r.log, "create", err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"user_id": user.ID})
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Select("id").First(&existing, user.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", user.ID)
			}
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"email":    user.Email,
			"login":    user.Login,
			"name":     user.Name,
			"birthday": user.Birthday,
		}).Error
	})
	if err != nil {
		return failure(ctx, r.log, "update", err)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"user_id": user.ID})
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&models.UserFriend{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.FilmLike{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("User", id)
		}
		return nil
	})
	if err != nil {
		return failure(ctx, r.log, "delete", err)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"user_id": id})
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, failure(ctx, r.log, "get", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, failure(ctx, r.log, "list", err)
	}
	return users, nil
}

func (r *userRepository) ExistingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	found := []uint{}
	if len(ids) == 0 {
		return found, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id IN ?", distinct(ids)).
		Order("id").
		Pluck("id", &found).Error; err != nil {
		return nil, failure(ctx, r.log, "existing_ids", err)
	}
	return found, nil
}

func (r *userRepository) AddFriend(ctx context.Context, userID, friendID uint) error {
	err := insertIgnoringDuplicates(r.db.WithContext(ctx), &models.UserFriend{UserID: userID, FriendID: friendID})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return &models.AppError{Code: models.CodeNotFound, Message: "User no longer exists"}
		}
		return failure(ctx, r.log, "add_friend", err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"user_id": userID, "friend_id": friendID, "association": "friend"})
	return nil
}

func (r *userRepository) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&models.UserFriend{}).Error; err != nil {
		return failure(ctx, r.log, "remove_friend", err)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"user_id": userID, "friend_id": friendID, "association": "friend"})
	return nil
}

func (r *userRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*").
		Joins("JOIN user_friends ON user_friends.friend_id = users.id").
		Where("user_friends.user_id = ?", userID).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, failure(ctx, r.log, "friends", err)
	}
	return users, nil
}

func (r *userRepository) GetCommonFriends(ctx context.Context, userID, otherID uint) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*").
		Joins("JOIN user_friends f1 ON f1.friend_id = users.id AND f1.user_id = ?", userID).
		Joins("JOIN user_friends f2 ON f2.friend_id = users.id AND f2.user_id = ?", otherID).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, failure(ctx, r.log, "common_friends", err)
	}
	return users, nil
}

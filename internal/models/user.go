package models

import "strings"

// User is a catalog member. Friend edges are stored in user_friends.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"size:255;not null" json:"email" validate:"notblank,email"`
	Login    string `gorm:"size:255;not null" json:"login" validate:"notblank,nowhitespace"`
	Name     string `gorm:"size:255" json:"name"`
	Birthday Date   `json:"birthday" validate:"omitempty,notfuture"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// ApplyDefaultName falls back to the login when no display name was given.
func (u *User) ApplyDefaultName() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

// UserFriend is a directed edge: UserID has FriendID as a friend.
// FriendID having UserID as a friend is a separate row.
type UserFriend struct {
	UserID   uint `gorm:"primaryKey;autoIncrement:false"`
	FriendID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName specifies the table name for GORM
func (UserFriend) TableName() string {
	return "user_friends"
}

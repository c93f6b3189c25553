package models

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleClient   = "client"
	RoleCustomer = "customer"

	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusRejected = "rejected"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name" validate:"required"`
	Email      string             `bson:"email" json:"email" validate:"required,email"`
	Password   string             `bson:"password" json:"-" validate:"required"`
	UserRole   string             `bson:"userRole" json:"userRole" validate:"required,oneof=admin client customer"`
	UserStatus string             `bson:"userStatus" json:"userStatus" validate:"required,oneof=approved pending rejected"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.UserRole == RoleAdmin
}

func (u *User) IsClient() bool {
	return u.UserRole == RoleClient
}

func (u *User) IsCustomer() bool {
	return u.UserRole == RoleCustomer
}

// UserUpdate carries the subset of role/status an admin wants to change.
// Nil fields are left untouched.
type UserUpdate struct {
	UserRole   *string `json:"userRole" validate:"omitempty,oneof=admin client customer"`
	UserStatus *string `json:"userStatus" validate:"omitempty,oneof=approved pending rejected"`
}

// NormalizeRole lower-cases role names so ADMIN and admin are the same role.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, update UserUpdate) (*User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) (*User, error)
}

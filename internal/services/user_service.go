package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
)

type UserService struct {
	userRepo   models.UserRepo
	tokens     *helpers.TokenIssuer
	bcryptCost int
}

func NewUserService(userRepo models.UserRepo, tokens *helpers.TokenIssuer, bcryptCost int) *UserService {
	return &UserService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

type SignupInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	UserRole   string `json:"userRole"`
	UserStatus string `json:"userStatus"`
}

// AuthResult is returned on a successful signin.
type AuthResult struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
	Token  string `json:"token"`
}

// CreateUser registers a user. Customers start approved and may not ask for
// another status; every other role starts pending whatever was requested.
func (us *UserService) CreateUser(ctx context.Context, in SignupInput) (*models.User, error) {
	role := models.NormalizeRole(in.UserRole)
	status := strings.ToLower(strings.TrimSpace(in.UserStatus))

	if role == "" || role == models.RoleCustomer {
		if status != "" && status != models.StatusApproved {
			return nil, helpers.BadRequest("We cannot set any other status for customer")
		}
		role = models.RoleCustomer
		status = models.StatusApproved
	} else {
		status = models.StatusPending
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Password:   in.Password,
		UserRole:   role,
		UserStatus: status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := models.Validate.Struct(user); err != nil {
		return nil, invalid(err)
	}

	hash, err := helpers.HashPassword(in.Password, us.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash

	created, err := us.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, helpers.Unprocessable(map[string]string{"email": "email is already registered"})
		}
		return nil, err
	}
	return created, nil
}

func (us *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := us.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, notFound(err, "No user found for the given email")
	}
	return user, nil
}

func (us *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, ok := helpers.ParseID(id)
	if !ok {
		return nil, helpers.BadRequest("Invalid user id")
	}
	user, err := us.userRepo.GetUserByID(ctx, oid)
	if err != nil {
		return nil, notFound(err, "No user found for the given id")
	}
	return user, nil
}

// Authenticate checks the credentials and issues a bearer token.
func (us *UserService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := us.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !helpers.VerifyPassword(user.Password, password) {
		return nil, helpers.Unauthorized("Invalid password for the given email")
	}
	token, err := us.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Email:  user.Email,
		Role:   user.UserRole,
		Status: user.UserStatus,
		Token:  token,
	}, nil
}

// ValidateToken verifies a bearer token. The jwt error text is what the
// caller sees.
func (us *UserService) ValidateToken(raw string) (*helpers.Claims, error) {
	claims, err := us.tokens.Validate(raw)
	if err != nil {
		return nil, helpers.Unauthorized(err.Error())
	}
	return claims, nil
}

func (us *UserService) ResetPassword(ctx context.Context, userID, oldPassword, newPassword string) (*models.User, error) {
	user, err := us.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !helpers.VerifyPassword(user.Password, oldPassword) {
		return nil, helpers.Unauthorized("Invalid old password, please provide the correct old password")
	}
	hash, err := helpers.HashPassword(newPassword, us.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	updated, err := us.userRepo.UpdatePassword(ctx, user.ID, hash)
	if err != nil {
		return nil, notFound(err, "No user found for the given id")
	}
	return updated, nil
}

// UpdateUserRoleOrStatus applies whichever of role and status is set.
func (us *UserService) UpdateUserRoleOrStatus(ctx context.Context, userID string, update models.UserUpdate) (*models.User, error) {
	oid, ok := helpers.ParseID(userID)
	if !ok {
		return nil, helpers.BadRequest("Invalid user id")
	}
	update.UserRole = normalizedOrNil(update.UserRole, models.NormalizeRole)
	update.UserStatus = normalizedOrNil(update.UserStatus, func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	})
	if err := models.Validate.Struct(update); err != nil {
		if fields := helpers.ValidationFields(err); len(fields) > 0 {
			return nil, &helpers.AppError{Kind: helpers.KindBadRequest, Fields: fields}
		}
		return nil, err
	}

	user, err := us.userRepo.UpdateUser(ctx, oid, update)
	if err != nil {
		return nil, notFound(err, "No user found for the given id")
	}
	return user, nil
}

func normalizedOrNil(v *string, norm func(string) string) *string {
	if v == nil {
		return nil
	}
	n := norm(*v)
	if n == "" {
		return nil
	}
	return &n
}

package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/tundavala/escola/core"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("a user with this username already exists")
	ErrInvalidHash    = errors.New("invalid password hash")
)

type (
	// Repository stores users. It assigns ID and CreatedAt, and rejects a taken username with ErrUsernameExists.
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByUsername(ctx context.Context, username string) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) create(ctx context.Context, usr User) (User, error) {
	usr, err := svc.repo.CreateUser(ctx, usr)
	if err == ErrUsernameExists {
		return User{}, core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
	}
	return usr, err
}

// Create stores a validated NewUser with a bcrypt hash of its password.
func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	usr := User{Username: nu.Username}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.create(ctx, usr)
}

// Register stores a user whose password was hashed beforehand (see `admin hashpassword`).
func (svc *Service) Register(ctx context.Context, username string, hash []byte) (User, error) {
	if _, err := bcrypt.Cost(hash); err != nil {
		return User{}, core.NewValidationError(ErrInvalidHash)
	}
	return svc.create(ctx, User{
		Username:     core.CleanString(username, true /* lower */),
		PasswordHash: hash,
	})
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetUserByUsername(ctx, core.CleanString(uname, true /* lower */))
}

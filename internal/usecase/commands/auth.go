package commands

import (
	"context"

	"spotstay/internal/domain/user"
	"spotstay/internal/infra"
	"spotstay/internal/infra/store"
	"spotstay/internal/pkg/errs"
	"spotstay/internal/pkg/jwt"
	"spotstay/internal/pkg/password"
	"spotstay/internal/usecase/queries"
)

var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrUserInactive       = errs.New("user account is inactive")
	ErrEmailTaken         = errs.New("email is already registered")
	ErrInvalidRole        = errs.New("invalid role")
	ErrWeakPassword       = errs.New("password does not meet requirements")
	ErrTokenGeneration    = errs.New("token generation failed")
)

const minPasswordLength = 8

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error)
	Create(ctx context.Context, params store.CreateUserParams) (*queries.UserView, error)
}

type SignupParams struct {
	Email    string
	Name     string
	Password string
	Role     string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (string, *queries.UserView, error)
	Signup(ctx context.Context, params SignupParams) (*queries.UserView, error)
}

type authCommandsImpl struct {
	users      UserRepository
	jwtService *jwt.Service
}

func NewAuthCommands(users UserRepository, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		users:      users,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (string, *queries.UserView, error) {
	view, hash, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same answer as a bad password so emails can't be probed.
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, errs.Mark(err, ErrStoreFailure)
	}

	if !view.IsActive {
		return "", nil, ErrUserInactive
	}

	if err := password.ComparePassword(hash, plainPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return "", nil, errs.Mark(err, ErrTokenGeneration)
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return "", nil, errs.Mark(err, ErrTokenGeneration)
	}

	return token, view, nil
}

func (a *authCommandsImpl) Signup(ctx context.Context, params SignupParams) (*queries.UserView, error) {
	if params.Role == "" {
		params.Role = user.RoleGuest.String()
	}
	role, err := user.NewRole(params.Role)
	if err != nil {
		return nil, ErrInvalidRole
	}

	if len(params.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := password.HashPassword(params.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	view, err := a.users.Create(ctx, store.CreateUserParams{
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: hash,
		Role:         role.String(),
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	return view, nil
}

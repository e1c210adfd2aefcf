package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

var errInvalidCredentials = unauthorized(CodeInvalidCredentials, "invalid email or password")

type AuthUseCase struct {
	Users   entity.UserRepositoryInterface
	Hasher  PasswordHasher
	Tokens  TokenIssuer
	Revoker TokenRevoker
}

func NewAuthUseCase(users entity.UserRepositoryInterface, hasher PasswordHasher, tokens TokenIssuer, revoker TokenRevoker) *AuthUseCase {
	return &AuthUseCase{Users: users, Hasher: hasher, Tokens: tokens, Revoker: revoker}
}

// Register creates a SALES_REP account; elevated roles are granted by an admin.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if err := ValidateRegisterInput(input); err != nil {
		return nil, err
	}
	return createUser(ctx, uc.Users, uc.Hasher, input.Name, input.Email, input.Password, entity.RoleSalesRep)
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, errInvalidCredentials
	}

	u, err := uc.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, dbError("failed to load user", err)
	}

	if err := uc.Hasher.Compare(u.PasswordHash, input.Password); err != nil {
		return nil, errInvalidCredentials
	}

	token, claims, err := uc.Tokens.Issue(u)
	if err != nil {
		return nil, &TechnicalError{Code: CodeInternal, Message: "failed to issue token", Err: err}
	}
	return &LoginOutput{Token: token, ExpiresAt: claims.ExpiresAt, User: u}, nil
}

// Logout revokes the token until it would have expired anyway.
func (uc *AuthUseCase) Logout(ctx context.Context, id entity.Identity) error {
	if id.TokenID == "" || uc.Revoker == nil {
		return nil
	}
	if !id.ExpiresAt.After(time.Now()) {
		return nil
	}
	if err := uc.Revoker.Revoke(ctx, id.TokenID, id.ExpiresAt); err != nil {
		return &TechnicalError{Code: CodeInternal, Message: "failed to revoke token", Err: err}
	}
	return nil
}

func (uc *AuthUseCase) Me(ctx context.Context, id entity.Identity) (*entity.User, error) {
	u, err := uc.Users.FindByID(ctx, id.UserID)
	if err != nil {
		return nil, repoError(err, entity.ErrUserNotFound, CodeUserNotFound, "failed to load user")
	}
	return u, nil
}

func createUser(ctx context.Context, users entity.UserRepositoryInterface, hasher PasswordHasher, name, email, password string, role entity.Role) (*entity.User, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, &TechnicalError{Code: CodeInternal, Message: "failed to hash password", Err: err}
	}

	u, err := entity.NewUser(name, email, hash, role)
	if err != nil {
		return nil, invalid(ValidationError{"user", err.Error()})
	}

	if err := users.Create(ctx, u); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, conflict(CodeEmailExists, err.Error())
		}
		return nil, dbError("failed to create user", err)
	}
	return u, nil
}

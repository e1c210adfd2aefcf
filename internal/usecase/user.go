package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// UserUseCase manages accounts. Sessions may be nil; role changes, password
// changes and deletions then take effect when existing tokens expire.
type UserUseCase struct {
	Users    entity.UserRepositoryInterface
	Hasher   PasswordHasher
	Sessions SessionRevoker
}

func NewUserUseCase(users entity.UserRepositoryInterface, hasher PasswordHasher, sessions SessionRevoker) *UserUseCase {
	return &UserUseCase{Users: users, Hasher: hasher, Sessions: sessions}
}

func (uc *UserUseCase) revokeSessions(ctx context.Context, userID string) error {
	if uc.Sessions == nil {
		return nil
	}
	if err := uc.Sessions.RevokeUser(ctx, userID); err != nil {
		return &TechnicalError{Code: CodeInternal, Message: "failed to revoke sessions", Err: err}
	}
	return nil
}

func canManage(actor entity.Identity, userID string) bool {
	return actor.UserID == userID || actor.Can(entity.PermUsersManage)
}

func (uc *UserUseCase) Create(ctx context.Context, input CreateUserInput) (*entity.User, error) {
	if err := ValidateCreateUserInput(input); err != nil {
		return nil, err
	}
	return createUser(ctx, uc.Users, uc.Hasher, input.Name, input.Email, input.Password, input.Role)
}

func (uc *UserUseCase) Get(ctx context.Context, id string, actor entity.Identity) (*entity.User, error) {
	if !canManage(actor, id) {
		return nil, forbidden("cannot read another user")
	}
	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entity.ErrUserNotFound, CodeUserNotFound, "failed to load user")
	}
	return u, nil
}

func (uc *UserUseCase) Update(ctx context.Context, id string, input UpdateUserInput, actor entity.Identity) (*entity.User, error) {
	if !canManage(actor, id) {
		return nil, forbidden("cannot update another user")
	}
	if input.Role != nil && !actor.Can(entity.PermUsersManage) {
		return nil, forbidden("only administrators can change roles")
	}
	if err := ValidateUpdateUserInput(input); err != nil {
		return nil, err
	}

	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entity.ErrUserNotFound, CodeUserNotFound, "failed to load user")
	}

	// Existing tokens carry the old role and credentials.
	if (input.Role != nil && *input.Role != u.Role) || input.Password != nil {
		if err := uc.revokeSessions(ctx, u.ID); err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		u.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Role != nil {
		u.Role = *input.Role
	}
	if input.Password != nil {
		hash, err := uc.Hasher.Hash(*input.Password)
		if err != nil {
			return nil, &TechnicalError{Code: CodeInternal, Message: "failed to hash password", Err: err}
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now()

	if err := uc.Users.Update(ctx, u); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, conflict(CodeEmailExists, err.Error())
		}
		return nil, repoError(err, entity.ErrUserNotFound, CodeUserNotFound, "failed to update user")
	}
	return u, nil
}

func (uc *UserUseCase) Delete(ctx context.Context, id string, actor entity.Identity) error {
	if actor.UserID == id {
		return &DomainError{Kind: KindValidation, Code: CodeValidation, Message: "cannot delete your own account"}
	}
	if err := uc.revokeSessions(ctx, id); err != nil {
		return err
	}
	if err := uc.Users.Delete(ctx, id); err != nil {
		return repoError(err, entity.ErrUserNotFound, CodeUserNotFound, "failed to delete user")
	}
	return nil
}

func (uc *UserUseCase) List(ctx context.Context, p entity.Page) (entity.PageResult[*entity.User], error) {
	users, total, err := uc.Users.List(ctx, p)
	if err != nil {
		return entity.PageResult[*entity.User]{}, dbError("failed to list users", err)
	}
	return entity.NewPageResult(users, total, p), nil
}

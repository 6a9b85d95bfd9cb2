package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

// 管理者フラグの正とするソース。
// users.is_admin の列か、admin_roles テーブルの照会か。
const (
	AdminSourceUsers = "users"
	AdminSourceRoles = "roles"
)

// アクセストークンを発行する約束（実装はcmd/api側）
type TokenIssuer interface {
	Issue(user model.User, isAdmin bool, now time.Time) (token string, expiresAt time.Time, err error)
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User      SafeUser  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LoginUsecase struct {
	userRepo    repository.UserRepository
	adminRoles  repository.AdminRoleRepository
	verifier    PasswordVerifier
	issuer      TokenIssuer
	clock       Clock
	adminSource string
}

// DI
func NewLoginUsecase(
	userRepo repository.UserRepository,
	adminRoles repository.AdminRoleRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
	adminSource string,
) *LoginUsecase {
	if adminSource != AdminSourceRoles {
		adminSource = AdminSourceUsers
	}
	return &LoginUsecase{
		userRepo:    userRepo,
		adminRoles:  adminRoles,
		verifier:    verifier,
		issuer:      issuer,
		clock:       clock,
		adminSource: adminSource,
	}
}

// ログイン実行
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return out, ErrInvalidCredentials
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		// 存在の有無は漏らさない
		return out, ErrInvalidCredentials
	}
	if err != nil {
		return out, err
	}

	if !u.verifier.Verify(user.PasswordHash, in.Password) {
		return out, ErrInvalidCredentials
	}

	// 管理者フラグの解決（ソースは設定次第）
	isAdmin, err := u.resolveAdmin(ctx, user)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(*user, isAdmin, now)
	if err != nil {
		return out, err
	}

	out.User = SafeUser{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: isAdmin,
	}
	out.Token = token
	out.ExpiresAt = expiresAt
	return out, nil
}

func (u *LoginUsecase) resolveAdmin(ctx context.Context, user *model.User) (bool, error) {
	if u.adminSource == AdminSourceRoles {
		return u.adminRoles.IsAdmin(ctx, user.ID)
	}
	return user.IsAdmin, nil
}

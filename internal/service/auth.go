package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dietcoach/backend/internal/models"
	"github.com/dietcoach/backend/internal/repo"
	"github.com/dietcoach/backend/pkg/events"
	"github.com/dietcoach/backend/pkg/hash"
	"github.com/dietcoach/backend/pkg/logging"
	"github.com/dietcoach/backend/pkg/tokens"
)

type AuthService struct {
	Repo        *repo.GormRepo
	Hasher      *hash.Hasher
	Tokens      *tokens.Manager
	Events      events.Publisher
	Index       UserIndex
	PhoneRegion string

	dummyOnce sync.Once
	dummyHash string
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Mobile   string
}

// ProfileUpdate holds optional changes; nil means unchanged.
type ProfileUpdate struct {
	Username *string
	Mobile   *string
	Password *string
}

type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if err := requireFields(
		field{"username", in.Username},
		field{"email", in.Email},
		field{"password", in.Password},
	); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if err := maxChars("Username", username, maxUsernameLen); err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	mobile, err := normalizeMobile(in.Mobile, s.PhoneRegion)
	if err != nil {
		return nil, err
	}

	if taken, err := s.Repo.EmailTaken(ctx, email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		l.Warn("register_error", "status", 409, "reason", "email already registered")
		return nil, conflict("Email already registered")
	}
	if taken, err := s.Repo.UsernameTaken(ctx, username, 0); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if taken {
		l.Warn("register_error", "status", 409, "reason", "username already taken")
		return nil, conflict("Username already taken")
	}

	pwHash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var res *AuthResult
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		role, err := tx.EnsureRole(ctx, models.RoleUser, "Regular user")
		if err != nil {
			return fmt.Errorf("resolve default role: %w", err)
		}

		user := &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: pwHash,
			MobileNumber: mobile,
			RoleID:       role.ID,
		}
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		user.Role = *role

		token, claims, err := s.Tokens.Issue(user.ID)
		if err != nil {
			return err
		}
		res = &AuthResult{User: user, Token: token, ExpiresAt: claims.ExpiresAt}
		return nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// lost a race with a concurrent registration
			if taken, _ := s.Repo.EmailTaken(ctx, email); taken {
				return nil, conflict("Email already registered")
			}
			return nil, conflict("Username already taken")
		}
		l.Error("register_error", "status", 500, "error", err)
		return nil, fmt.Errorf("register: %w", err)
	}

	l.Info("user_registered", "user_id", res.User.ID)
	publish(ctx, s.Events, events.TopicUser, events.Event{Type: "user_registered", UserID: res.User.ID, Username: res.User.Username})
	indexUser(ctx, s.Index, res.User)
	return res, nil
}

// Login answers unknown email and wrong password with the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, invalid("Email and password required")
	}

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// burn the same bcrypt time as a real check
			s.Hasher.Check(s.dummy(), password)
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, badCreds("Invalid email or password")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !s.Hasher.Check(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password", "user_id", user.ID)
		return nil, badCreds("Invalid email or password")
	}

	token, claims, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	l.Info("login_successful", "user_id", user.ID)
	publish(ctx, s.Events, events.TopicUser, events.Event{Type: "user_logged_in", UserID: user.ID, Username: user.Username})
	return &AuthResult{User: user, Token: token, ExpiresAt: claims.ExpiresAt}, nil
}

// Logout revokes a token that already passed verification.
func (s *AuthService) Logout(ctx context.Context, claims tokens.Claims) error {
	if err := s.Tokens.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	publish(ctx, s.Events, events.TopicUser, events.Event{Type: "user_logged_out", UserID: claims.UserID})
	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("User not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*models.User, error) {
	user, err := applyUserUpdate(ctx, s.Repo, s.Hasher, s.PhoneRegion, userID, UserUpdate{
		Username: upd.Username,
		Mobile:   upd.Mobile,
		Password: upd.Password,
	})
	if err != nil {
		return nil, err
	}
	indexUser(ctx, s.Index, user)
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "auth.change_password", "user_id", userID)

	if oldPassword == "" || newPassword == "" {
		return invalid("Old and new password required")
	}
	if err := checkPassword(newPassword); err != nil {
		return err
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !s.Hasher.Check(user.PasswordHash, oldPassword) {
		l.Warn("change_password_failed", "status", 401, "reason", "wrong old password")
		return badCreds("Invalid old password")
	}

	pwHash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = pwHash
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	l.Info("password_changed")
	return nil
}

// VerifySession checks the token and loads its user. Token errors are
// returned unwrapped so callers can match the tokens sentinels.
func (s *AuthService) VerifySession(ctx context.Context, raw string) (*models.User, tokens.Claims, error) {
	claims, err := s.Tokens.Verify(ctx, raw)
	if err != nil {
		return nil, tokens.Claims{}, err
	}
	user, err := s.GetProfile(ctx, claims.UserID)
	if err != nil {
		return nil, tokens.Claims{}, err
	}
	return user, claims, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash("dietcoach-dummy-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dietcoach/backend/internal/models"
	"github.com/dietcoach/backend/internal/repo"
	"github.com/dietcoach/backend/internal/util"
	"github.com/dietcoach/backend/pkg/events"
	"github.com/dietcoach/backend/pkg/hash"
	"github.com/dietcoach/backend/pkg/logging"
)

const searchLimit = 20

type UserService struct {
	Repo        *repo.GormRepo
	Hasher      *hash.Hasher
	Events      events.Publisher
	Index       UserIndex
	PhoneRegion string
}

type UserUpdate struct {
	Username *string
	Mobile   *string
	Password *string
	RoleID   *uint
}

type Paged[T any] struct {
	Items   []T
	Total   int64
	Page    int
	PerPage int
	Pages   int
}

type UserStats struct {
	User                *models.User
	TotalDietPlans      int64
	TotalExercisePlans  int64
	TotalChatbotQueries int64
	LatestDietPlan      *models.DietPlan
	LatestExercisePlan  *models.ExercisePlan
}

// applyUserUpdate validates and stores a partial update in one transaction.
func applyUserUpdate(ctx context.Context, r *repo.GormRepo, h *hash.Hasher, region string, id uint, ch UserUpdate) (*models.User, error) {
	var (
		username *string
		mobile   *string
		pwHash   string
	)
	if ch.Username != nil {
		u := strings.TrimSpace(*ch.Username)
		if u == "" {
			return nil, invalid("Username cannot be empty")
		}
		if err := maxChars("Username", u, maxUsernameLen); err != nil {
			return nil, err
		}
		username = &u
	}
	if ch.Mobile != nil {
		m, err := normalizeMobile(*ch.Mobile, region)
		if err != nil {
			return nil, err
		}
		mobile = m
	}
	if ch.Password != nil {
		if *ch.Password == "" {
			return nil, invalid("Password cannot be empty")
		}
		if err := checkPassword(*ch.Password); err != nil {
			return nil, err
		}
		var err error
		if pwHash, err = h.Hash(*ch.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	var user *models.User
	err := r.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		user, err = tx.UserByID(ctx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("User not found")
			}
			return err
		}

		if username != nil && *username != user.Username {
			taken, err := tx.UsernameTaken(ctx, *username, id)
			if err != nil {
				return err
			}
			if taken {
				return conflict("Username already taken")
			}
			user.Username = *username
		}
		if ch.Mobile != nil {
			user.MobileNumber = mobile
		}
		if pwHash != "" {
			user.PasswordHash = pwHash
		}
		if ch.RoleID != nil && *ch.RoleID != user.RoleID {
			role, err := tx.RoleByID(ctx, *ch.RoleID)
			if err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return invalid("Invalid role_id")
				}
				return err
			}
			user.RoleID = role.ID
			user.Role = *role
		}

		if err := tx.SaveUser(ctx, user); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return conflict("Username already taken")
			}
			return err
		}
		return nil
	})
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, page, perPage int) (*Paged[models.User], error) {
	p := util.NewPage(page, perPage, 20)
	users, total, err := s.Repo.ListUsers(ctx, p.Offset(), p.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &Paged[models.User]{Items: users, Total: total, Page: p.Page, PerPage: p.PerPage, Pages: p.Pages(total)}, nil
}

// Search prefers the full-text index and falls back to the database.
func (s *UserService) Search(ctx context.Context, q string) ([]models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.search")

	q = strings.TrimSpace(q)
	if q == "" {
		return nil, invalid("Search query required")
	}

	if s.Index != nil {
		_, docs, err := s.Index.SearchUsers(ctx, q, 0, searchLimit)
		if err == nil {
			ids := make([]uint, len(docs))
			for i, d := range docs {
				ids[i] = d.ID
			}
			users, err := s.Repo.UsersByIDs(ctx, ids)
			if err != nil {
				return nil, fmt.Errorf("load users: %w", err)
			}
			return users, nil
		}
		l.Warn("index_search_failed", "reason", "falling back to database", "error", err)
	}

	users, err := s.Repo.SearchUsers(ctx, q, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func canAccess(actor *models.User, id uint) bool {
	return actor != nil && (actor.ID == id || actor.IsAdmin())
}

func (s *UserService) Get(ctx context.Context, actor *models.User, id uint) (*models.User, error) {
	if !canAccess(actor, id) {
		return nil, forbidden("Access denied")
	}
	user, err := s.Repo.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("User not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// Update lets users edit themselves. Only admins may edit others or change roles.
func (s *UserService) Update(ctx context.Context, actor *models.User, id uint, upd UserUpdate) (*models.User, error) {
	if !canAccess(actor, id) {
		return nil, forbidden("Access denied")
	}
	ch := UserUpdate{Username: upd.Username, Mobile: upd.Mobile, Password: upd.Password}
	if actor.IsAdmin() {
		ch.RoleID = upd.RoleID
	}

	user, err := applyUserUpdate(ctx, s.Repo, s.Hasher, s.PhoneRegion, id, ch)
	if err != nil {
		return nil, err
	}
	indexUser(ctx, s.Index, user)
	publish(ctx, s.Events, events.TopicUser, events.Event{Type: "user_updated", UserID: user.ID, Username: user.Username})
	return user, nil
}

// Delete removes a user and everything they own. The last admin stays.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "users.delete", "user_id", id)

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		user, err := tx.UserByID(ctx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("User not found")
			}
			return err
		}
		if user.IsAdmin() {
			admins, err := tx.CountUsersWithRole(ctx, models.RoleAdmin)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return invalid("Cannot delete last admin")
			}
		}
		return tx.DeleteUser(ctx, id)
	})
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			return se
		}
		l.Error("delete_user_failed", "status", 500, "error", err)
		return fmt.Errorf("delete user: %w", err)
	}

	l.Info("user_deleted")
	unindexUser(ctx, s.Index, id)
	publish(ctx, s.Events, events.TopicUser, events.Event{Type: "user_deleted", UserID: id})
	return nil
}

func (s *UserService) Stats(ctx context.Context, actor *models.User, id uint) (*UserStats, error) {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	plans, err := s.Repo.CountPlans(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count plans: %w", err)
	}
	exercisePlans, err := s.Repo.CountExercisePlans(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count exercise plans: %w", err)
	}
	queries, err := s.Repo.CountQueries(ctx, id, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("count queries: %w", err)
	}
	latest, err := s.Repo.LatestPlan(ctx, id)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("latest plan: %w", err)
	}
	latestExercise, err := s.Repo.LatestExercisePlan(ctx, id)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("latest exercise plan: %w", err)
	}

	return &UserStats{
		User:                user,
		TotalDietPlans:      plans,
		TotalExercisePlans:  exercisePlans,
		TotalChatbotQueries: queries,
		LatestDietPlan:      latest,
		LatestExercisePlan:  latestExercise,
	}, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookdrive/internal/auth"
	"bookdrive/internal/cache"
	"bookdrive/internal/errors"
	"bookdrive/internal/model"
	"bookdrive/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes user account operations.
type UserService interface {
	CreateUser(ctx context.Context, in NewUserInput) (*model.User, error)
	CreateSuperuser(ctx context.Context, in NewUserInput) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserByUID(ctx context.Context, uid uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	SoftDelete(ctx context.Context, id uint, by string) error
	CheckPassword(ctx context.Context, email, password string) (*model.User, error)
}

type userService struct {
	repo   repository.UserRepository
	cache  *cache.Client
	hasher auth.PasswordHasher
	now    func() time.Time
}

// NewUserService builds a UserService with repository, cache and password hasher.
func NewUserService(repo repository.UserRepository, cache *cache.Client, hasher auth.PasswordHasher) UserService {
	return &userService{repo: repo, cache: cache, hasher: hasher, now: time.Now}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// CreateUser validates, hashes and persists a regular user.
func (s *userService) CreateUser(ctx context.Context, in NewUserInput) (*model.User, error) {
	user, err := NewUser(in, s.hasher, s.now)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, user)
}

// CreateSuperuser persists an active Admin.
func (s *userService) CreateSuperuser(ctx context.Context, in NewUserInput) (*model.User, error) {
	user, err := NewSuperuser(in, s.hasher, s.now)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, user)
}

func (s *userService) persist(ctx context.Context, user *model.User) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrUserAlreadyExists
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

// GetUser retrieves a user by ID with caching. The cached copy carries no password hash.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

func (s *userService) GetUserByUID(ctx context.Context, uid uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// SoftDelete marks the user deleted and inactive. The row and its email stay reserved.
func (s *userService) SoftDelete(ctx context.Context, id uint, by string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound
		}
		return err
	}

	user.IsDeleted = true
	user.IsActive = false
	user.ModifiedDate = s.now().UTC()
	if by != "" {
		user.ModifiedBy = by
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// CheckPassword verifies credentials of an active user and stamps last_login.
func (s *userService) CheckPassword(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	if user.IsDeleted || !user.IsActive {
		return nil, errors.ErrNotFound
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user.LastLogin = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

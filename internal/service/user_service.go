package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// UpdateProfileInput carries the profile fields a user may change.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	DarkMode *bool
	Theme    *string
}

// ProfileSummary pairs a user with aggregate counts of their tasks by
// status. Every status is present in the map even when its count is zero.
type ProfileSummary struct {
	User  *domain.User              `json:"user"`
	Stats map[domain.TaskStatus]int `json:"stats"`
}

// UserService provides registration, authentication and profile management.
type UserService interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)

	// Authenticate verifies the credentials and returns the user.
	// Both an unknown email and a wrong password yield
	// auth.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// Get returns the user with the given ID.
	Get(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile applies the set fields to the user's profile.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error)

	// ChangePassword verifies the current password and stores a hash of
	// the new one.
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error

	// ProfileSummary returns the user together with their task counts
	// per status.
	ProfileSummary(ctx context.Context, userID uuid.UUID) (*ProfileSummary, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	users    store.UserStore
	tasks    store.TaskStore
	hasher   auth.PasswordHasher
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(
	users store.UserStore,
	tasks store.TaskStore,
	hasher auth.PasswordHasher,
	log *slog.Logger,
) UserService {
	if log == nil {
		log = slog.Default()
	}
	return &userServiceImpl{
		users:    users,
		tasks:    tasks,
		hasher:   hasher,
		logger:   log.With(slog.String("component", "user_service")),
		timeFunc: time.Now,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			// Indistinguishable from a wrong password so callers
			// cannot probe which emails are registered.
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return user, nil
}

func (s *userServiceImpl) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *userServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	input UpdateProfileInput,
) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = domain.NormalizeEmail(*input.Email)
	}
	if input.DarkMode != nil {
		user.Preferences.DarkMode = *input.DarkMode
	}
	if input.Theme != nil {
		user.Preferences.Theme = *input.Theme
	}
	user.UpdatedAt = s.timeFunc().UTC()

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userServiceImpl) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(user.HashedPassword, currentPassword); err != nil {
		return ErrCurrentPasswordIncorrect
	}

	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.UpdatedAt = s.timeFunc().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "password changed", slog.String("user_id", user.ID.String()))
	return nil
}

func (s *userServiceImpl) ProfileSummary(ctx context.Context, userID uuid.UUID) (*ProfileSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := s.tasks.StatusCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	stats := map[domain.TaskStatus]int{
		domain.TaskStatusTodo:       0,
		domain.TaskStatusInProgress: 0,
		domain.TaskStatusDone:       0,
	}
	for status, n := range counts {
		stats[status] = n
	}

	return &ProfileSummary{User: user, Stats: stats}, nil
}

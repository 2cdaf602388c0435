package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/identity"
	"github.com/meditrack/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TokenIssuer creates and validates access tokens
type TokenIssuer interface {
	Issue(userID uuid.UUID, username string, role string) (string, time.Time, error)
}

// AuthService handles login and account management
type AuthService struct {
	userRepo identity.Repository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo identity.Repository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login verifies credentials and returns a signed access token. Failed
// lookups and wrong passwords return the same error so usernames
// cannot be probed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account is disabled")
	}
	if !user.CheckPassword(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("failed to record login time", zap.Error(err))
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *ToUserResponse(user),
	}, nil
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	role := identity.Role(req.Role)
	if role == "" {
		role = identity.RoleAssistant
	}
	user, err := identity.NewUser(req.Username, req.Password, role)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return ToUserResponse(user), nil
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ListUsers returns a page of accounts
func (s *AuthService) ListUsers(ctx context.Context, page, pageSize int, search string) (*shared.Paginated[UserResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.Search = search
	filter.OrderBy = "username"
	filter.OrderDir = "asc"

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]UserResponse, 0, len(users))
	for idx := range users {
		items = append(items, *ToUserResponse(&users[idx]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ChangePassword replaces a user's password after verifying the old one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(req.OldPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

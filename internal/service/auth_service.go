package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/ajaymaurya90/ecompointer-backend/internal/dto"
	"github.com/ajaymaurya90/ecompointer-backend/internal/repository"
	"github.com/ajaymaurya90/ecompointer-backend/internal/utils"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	invalidCredentials  = "invalid credentials"
	invalidRefreshToken = "invalid refresh token"
)

// authService implements AuthService interface
type authService struct {
	userRepo      repository.UserRepository
	ownerRepo     repository.BrandOwnerRepository
	tokenIssuer   *utils.TokenIssuer
	bcryptCost    int
	dummyHash     string
	revokeOnReuse bool
	metrics       *authMetrics
	logger        *zap.Logger
}

// NewAuthService creates a new auth service. With revokeOnReuse set, presenting a
// superseded refresh token revokes every session of its owner.
func NewAuthService(
	userRepo repository.UserRepository,
	ownerRepo repository.BrandOwnerRepository,
	tokenIssuer *utils.TokenIssuer,
	bcryptCost int,
	revokeOnReuse bool,
	meterProvider metric.MeterProvider,
	logger *zap.Logger,
) (AuthService, error) {
	metrics, err := newAuthMetrics(meterProvider)
	if err != nil {
		return nil, err
	}

	// compared against on unknown emails so both login failures cost one bcrypt run
	dummyHash, err := utils.HashPassword("ecompointer-unknown-account", bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare login: %w", err)
	}

	return &authService{
		userRepo:      userRepo,
		ownerRepo:     ownerRepo,
		tokenIssuer:   tokenIssuer,
		bcryptCost:    bcryptCost,
		dummyHash:     dummyHash,
		revokeOnReuse: revokeOnReuse,
		metrics:       metrics,
		logger:        logger,
	}, nil
}

// Register creates a brand-owner identity together with its business profile
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := utils.SanitizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, NewError(ErrBadRequest, "invalid email format")
	}

	phone := utils.SanitizePhone(req.Phone)
	if !utils.ValidatePhone(phone) {
		return nil, NewError(ErrBadRequest, "invalid phone number")
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, NewError(ErrConflict, "email already exists")
	}

	exists, err = s.userRepo.PhoneExists(ctx, phone, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, NewError(ErrConflict, "phone already exists")
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         domain.RoleBrandOwner,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	owner := &domain.BrandOwner{BusinessName: req.BusinessName}

	if err := s.userRepo.CreateWithBrandOwner(ctx, user, owner); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, NewError(ErrConflict, "email already exists")
		case errors.Is(err, repository.ErrDuplicatePhone):
			return nil, NewError(ErrConflict, "phone already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.registered(ctx)

	return &dto.RegisterResponse{
		Message: "Registered successfully",
		UserID:  user.ID,
	}, nil
}

// Login authenticates a user and starts a new session
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	result, err := s.login(ctx, req)
	s.metrics.login(ctx, err)
	return result, err
}

func (s *authService) login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.CheckPasswordHash(req.Password, s.dummyHash)
			return nil, NewError(ErrUnauthorized, invalidCredentials)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, NewError(ErrUnauthorized, invalidCredentials)
	}

	tokens, err := s.tokenIssuer.IssuePair(user)
	if err != nil {
		return nil, err
	}

	hash := utils.HashToken(tokens.RefreshToken)
	if err := s.userRepo.SetRefreshTokenHash(ctx, user.ID, &hash); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return s.authResult(user, tokens), nil
}

// Refresh exchanges a refresh token for a new token pair. The stored hash and
// token version must both match, and the swap only succeeds if no concurrent
// rotation or revocation finished first.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	result, err := s.refresh(ctx, refreshToken)
	s.metrics.refresh(ctx, err)
	return result, err
}

func (s *authService) refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.tokenIssuer.Verify(refreshToken, domain.RefreshToken)
	if err != nil {
		return nil, NewError(ErrUnauthorized, invalidRefreshToken)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewError(ErrUnauthorized, invalidRefreshToken)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasSession() {
		return nil, NewError(ErrForbidden, "session has ended, please log in again")
	}

	if claims.TokenVersion != user.TokenVersion {
		return nil, NewError(ErrUnauthorized, invalidRefreshToken)
	}

	storedHash := *user.RefreshTokenHash
	if !utils.TokenMatches(refreshToken, storedHash) {
		s.handleReuse(ctx, user, claims)
		return nil, NewError(ErrUnauthorized, invalidRefreshToken)
	}

	tokens, err := s.tokenIssuer.IssuePair(user)
	if err != nil {
		return nil, err
	}

	rotated, err := s.userRepo.RotateRefreshToken(ctx, user.ID, storedHash, utils.HashToken(tokens.RefreshToken), user.TokenVersion)
	if err != nil {
		return nil, err
	}
	if !rotated {
		return nil, NewError(ErrUnauthorized, invalidRefreshToken)
	}

	return s.authResult(user, tokens), nil
}

// handleReuse reacts to a validly signed refresh token that is no longer the stored one
func (s *authService) handleReuse(ctx context.Context, user *domain.User, claims *domain.TokenClaims) {
	s.logger.Warn("Refresh token reuse detected",
		zap.String("user_id", user.ID),
		zap.String("token_id", claims.ID),
		zap.Bool("revoke", s.revokeOnReuse),
	)

	if !s.revokeOnReuse {
		return
	}

	if err := s.userRepo.RevokeAllSessions(ctx, user.ID); err != nil {
		s.logger.Error("Failed to revoke sessions after token reuse",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}
}

// Logout ends the current session. Logging out twice is not an error.
func (s *authService) Logout(ctx context.Context, userID string) error {
	err := s.userRepo.SetRefreshTokenHash(ctx, userID, nil)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// GetProfile returns the profile of a user, with the business part for brand owners
func (s *authService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewError(ErrNotFound, "user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	response := &dto.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}

	if user.Role != domain.RoleBrandOwner {
		return response, nil
	}

	owner, err := s.ownerRepo.GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		response.Business = &dto.BusinessInfo{
			ID:           owner.ID,
			BusinessName: owner.BusinessName,
		}
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Warn("Brand owner without business profile", zap.String("user_id", user.ID))
	default:
		return nil, fmt.Errorf("failed to get business profile: %w", err)
	}

	return response, nil
}

// UpdateProfile changes the profile of targetID. Only super admins may change someone else.
func (s *authService) UpdateProfile(ctx context.Context, actor domain.Identity, targetID string, update domain.ProfileUpdate) error {
	if actor.ID != targetID && actor.Role != domain.RoleSuperAdmin {
		return NewError(ErrForbidden, "you can only update your own profile")
	}

	if update.Empty() {
		return NewError(ErrBadRequest, "no fields to update")
	}

	if update.Phone != nil {
		phone := utils.SanitizePhone(*update.Phone)
		if !utils.ValidatePhone(phone) {
			return NewError(ErrBadRequest, "invalid phone number")
		}
		update.Phone = &phone

		exists, err := s.userRepo.PhoneExists(ctx, phone, targetID)
		if err != nil {
			return fmt.Errorf("failed to check phone: %w", err)
		}
		if exists {
			return NewError(ErrConflict, "phone already exists")
		}
	}

	err := s.userRepo.UpdateProfile(ctx, targetID, update)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return NewError(ErrNotFound, "user not found")
	case errors.Is(err, repository.ErrDuplicatePhone):
		return NewError(ErrConflict, "phone already exists")
	case errors.Is(err, repository.ErrNoBrandOwnerProfile):
		return NewError(ErrBadRequest, "businessName applies only to brand owners")
	default:
		return fmt.Errorf("failed to update profile: %w", err)
	}
}

// ListUsers returns a page of live, non-super-admin users
func (s *authService) ListUsers(ctx context.Context, page, limit int) (*dto.UserListResponse, error) {
	page, limit = normalizePage(page, limit)

	users, total, err := s.userRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, dto.NewUserResponse(user))
	}

	return &dto.UserListResponse{
		Data: data,
		Meta: dto.PageMeta{
			Total:    total,
			Page:     page,
			Limit:    limit,
			LastPage: (total + limit - 1) / limit,
		},
	}, nil
}

// DeleteUser soft-deletes targetID and revokes its sessions
func (s *authService) DeleteUser(ctx context.Context, actor domain.Identity, targetID string) error {
	if actor.ID == targetID {
		return NewError(ErrForbidden, "you cannot delete your own account")
	}

	if err := s.userRepo.SoftDelete(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewError(ErrNotFound, "user not found")
		}
		return err
	}

	s.logger.Info("User soft deleted",
		zap.String("user_id", targetID),
		zap.String("deleted_by", actor.ID),
	)

	return nil
}

func (s *authService) authResult(user *domain.User, tokens *domain.TokenPair) *AuthResult {
	return &AuthResult{
		AuthResponse: &dto.AuthResponse{
			AccessToken: tokens.AccessToken,
			User:        dto.NewUserInfo(user),
		},
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    int(s.tokenIssuer.RefreshTokenExpiry().Seconds()),
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

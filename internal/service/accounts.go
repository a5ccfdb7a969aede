package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sreeaadya/drycleaners/internal/auth"
	"github.com/sreeaadya/drycleaners/internal/domain"
	"github.com/sreeaadya/drycleaners/internal/mirror"
	"github.com/sreeaadya/drycleaners/internal/observability"
)

//go:generate mockgen -source=internal/service/accounts.go -destination=internal/service/accounts_mock_test.go -package=service

type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*auth.Claims, error)
}

// Accounts handles signup, login, third-party login and profile upkeep.
type Accounts struct {
	repo     domain.UserRepository
	verifier TokenVerifier
	mirror   Mirror
	logger   *zap.Logger
	metrics  observability.Metrics
	timeout  time.Duration
}

func NewAccounts(repo domain.UserRepository, verifier TokenVerifier, m Mirror,
	logger *zap.Logger, metrics observability.Metrics, timeout time.Duration) *Accounts {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Accounts{
		repo:     repo,
		verifier: verifier,
		mirror:   m,
		logger:   logger,
		metrics:  metrics,
		timeout:  timeout,
	}
}

func (s *Accounts) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UID:                  uuid.NewString(),
		Name:                 name,
		Email:                email,
		Password:             string(hash),
		NotificationsEnabled: true,
		Joined:               time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("email", email))
	return user, nil
}

func (s *Accounts) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: incorrect password", domain.ErrValidation)
	}
	s.logger.Info("user logged in", zap.String("email", email))
	return user, nil
}

// GoogleLogin verifies the ID token, then creates the account on first login
// or links the subject id to an existing unlinked account. A different
// already-linked subject id is never overwritten.
func (s *Accounts) GoogleLogin(ctx context.Context, rawToken string) (*domain.User, error) {
	claims, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, claims.Email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		user = &domain.User{
			UID:                  uuid.NewString(),
			Name:                 claims.Name,
			Email:                claims.Email,
			GoogleID:             claims.Subject,
			NotificationsEnabled: true,
			Joined:               time.Now(),
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("user created via google login", zap.String("email", claims.Email))
	case err != nil:
		return nil, err
	case user.GoogleID == "":
		if err := s.repo.LinkGoogleID(ctx, claims.Email, claims.Subject); err != nil {
			return nil, err
		}
		user.GoogleID = claims.Subject
		s.logger.Info("google id linked", zap.String("email", claims.Email))
	}

	return user, nil
}

func (s *Accounts) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	if upd.Email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	user, err := s.repo.UpsertProfile(ctx, upd)
	if err != nil {
		return nil, err
	}
	s.logger.Info("profile updated", zap.String("email", upd.Email))

	if upd.UID != "" {
		s.mirrorProfile(ctx, upd.UID, user)
	}
	return user, nil
}

// DeleteAccount removes the user from both stores. A missing primary-store
// record is not an error; the original contract always reports success.
func (s *Accounts) DeleteAccount(ctx context.Context, uid, email string) error {
	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.logger.Warn("delete of unknown user", zap.String("email", email))
	}

	if uid != "" {
		mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		if err := s.mirror.RemoveUser(mctx, uid); err != nil {
			s.metrics.ObserveMirror("remove_user", false)
			s.logger.Warn("mirror user remove failed", zap.String("uid", uid), zap.Error(err))
		} else {
			s.metrics.ObserveMirror("remove_user", true)
		}
	}
	s.logger.Info("user deleted", zap.String("email", email))
	return nil
}

func (s *Accounts) mirrorProfile(ctx context.Context, uid string, user *domain.User) {
	mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	profile := mirror.UserProfile{
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		JoinedDate: user.Joined.Format(time.RFC3339),
		Address:    user.Address,
		City:       user.City,
		Pincode:    user.Pincode,
		Landmark:   user.Landmark,
	}
	if err := s.mirror.PublishUser(mctx, uid, profile); err != nil {
		s.metrics.ObserveMirror("publish_user", false)
		s.logger.Warn("mirror profile write failed", zap.String("uid", uid), zap.Error(err))
		return
	}
	s.metrics.ObserveMirror("publish_user", true)
}

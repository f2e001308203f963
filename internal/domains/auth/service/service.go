package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"resort/config"
	"resort/infras/jwt"
	"resort/infras/otel"
	"resort/internal/domains/auth/model/dto"
	userModel "resort/internal/domains/user/model"
	userDto "resort/internal/domains/user/model/dto"
	userRepo "resort/internal/domains/user/repository"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/password"
	"resort/shared/session"
	"resort/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Verify(ctx context.Context) (dto.VerifyResponse, error)
	Logout(ctx context.Context, token string, req dto.LogoutRequest)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	sessions   session.Store
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, sessions session.Store) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		sessions:   sessions,
	}
}

// Login answers every credential problem with the same 401 so callers cannot
// tell an unknown email from a wrong password or a disabled account.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	email := userDto.NormalizeEmail(req.Identifier)

	user, err := s.userRepo.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    userModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", email).Msg("login attempt with unknown email")

		_ = password.VerifyDecoy(req.Secret)

		return res, failure.InvalidCredentialsError
	}

	if err := password.Verify(req.Secret, user.Password); err != nil {
		log.Warn().Str("email", email).Msg("login attempt with wrong password")

		return res, failure.InvalidCredentialsError
	}

	if !user.Active {
		log.Warn().Str("email", email).Msg("login attempt on deactivated account")

		return res, failure.InvalidCredentialsError
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	bookkeeping := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}

	if password.NeedsRehash(user.Password) {
		if rehashed, err := password.Hash(req.Secret); err == nil {
			bookkeeping.Password = rehashed
		}
	}

	updatedFields := shared.TransformFields(bookkeeping, user.ID)

	// a failed bookkeeping write must not lock the admin out
	if err := s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair, user)

	return res, nil
}

func (s *serviceImpl) activeUser(ctx context.Context, id string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.Active {
		return user, failure.Unauthorized("account is no longer active") // nolint:wrapcheck
	}

	return user, nil
}

// Verify reports the caller behind an already validated bearer token.
func (s *serviceImpl) Verify(ctx context.Context) (res dto.VerifyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.LoginRequiredError
	}

	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return res, err
	}

	res.Valid = true
	res.User.FromModel(user)

	return res, nil
}

// Logout revokes whatever it can parse and never fails.
func (s *serviceImpl) Logout(ctx context.Context, token string, req dto.LogoutRequest) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()

	s.revoke(ctx, token, jwt.AccessToken)
	s.revoke(ctx, req.RefreshToken, jwt.RefreshToken)
}

func (s *serviceImpl) revoke(ctx context.Context, token string, tokenType jwt.TokenType) {
	if token == constant.Empty {
		return
	}

	claims, err := s.jwtService.ValidateToken(ctx, token, tokenType)
	if err != nil {
		log.Debug().Err(err).Str("type", string(tokenType)).Msg("skipping revocation of unusable token")

		return
	}

	if err := s.sessions.Revoke(ctx, claims.TokenID, claims.Remaining(timezone.Now())); err != nil {
		log.Error().Err(err).Str("type", string(tokenType)).Msg("failed to revoke token")
	}
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check refresh token revocation")
	}

	if revoked {
		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	user, err := s.activeUser(ctx, claims.UserID)
	if err != nil {
		return res, err
	}

	// the role is read again so a demotion applies from the next refresh
	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.sessions.Revoke(ctx, claims.TokenID, claims.Remaining(timezone.Now())); err != nil {
		log.Error().Err(err).Msg("failed to revoke used refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return failure.LoginRequiredError
	}

	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.Validation([]string{"current_password is incorrect"}) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, userID)

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"resort/config"
	"resort/infras/jwt"
	jwtMocks "resort/infras/jwt/mocks"
	"resort/infras/otel/mocks"
	"resort/internal/domains/auth/model/dto"
	"resort/internal/domains/auth/service"
	userMocks "resort/internal/domains/user/mocks"
	userModel "resort/internal/domains/user/model"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/password"
	sessionMocks "resort/shared/session/mocks"
)

type fixture struct {
	svc      service.Auth
	repo     *userMocks.MockUser
	jwt      *jwtMocks.MockJWT
	sessions *sessionMocks.MockStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.ApplyDefaults()

	f := fixture{
		repo:     userMocks.NewMockUser(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
		sessions: sessionMocks.NewMockStore(ctrl),
	}
	f.svc = service.New(f.repo, cfg, mocks.NewOtel(), f.jwt, f.sessions)

	return f
}

func hashed(t *testing.T, plain string) string {
	t.Helper()

	h, err := password.Hash(plain)
	require.NoError(t, err)

	return h
}

func claims(userID, tokenID string, tokenType jwt.TokenType) *jwt.Claims {
	return &jwt.Claims{
		UserID:  userID,
		TokenID: tokenID,
		Type:    tokenType,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

var pair = &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 3600}

func TestAuthService_Login(t *testing.T) {
	secret := "correct-horse"
	digest := hashed(t, secret)

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success",
			req:  dto.LoginRequest{Identifier: "  Admin@Resort.Test ", Secret: secret},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (userModel.User, error) {
						eq, ok := filter.Filters[0].(gDto.Filter)
						require.True(t, ok)
						assert.Equal(t, "admin@resort.test", eq.Value)

						return userModel.User{ID: "u-1", Email: "admin@resort.test", Name: "Ana", Password: digest, Role: constant.RoleAdmin, Active: true}, nil
					})
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "u-1", "admin@resort.test", constant.RoleAdmin).Return(pair, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, userModel.FieldLastLogin)
						assert.NotContains(t, fields, "password")

						return nil
					})
			},
		},
		{
			name: "low cost hash is upgraded",
			req:  dto.LoginRequest{Identifier: "admin@resort.test", Secret: secret},
			setupMock: func(f fixture) {
				weak, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
				require.NoError(t, err)

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Email: "admin@resort.test", Password: string(weak), Role: constant.RoleAdmin, Active: true}, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pair, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						rehashed, ok := fields["password"].(string)
						require.True(t, ok)
						assert.False(t, password.NeedsRehash(rehashed))
						assert.NoError(t, password.Verify(secret, rehashed))

						return nil
					})
			},
		},
		{
			name: "last login write failure is ignored",
			req:  dto.LoginRequest{Identifier: "admin@resort.test", Secret: secret},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Email: "admin@resort.test", Password: digest, Role: constant.RoleAdmin, Active: true}, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pair, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Identifier: "nobody@resort.test", Secret: secret},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Identifier: "admin@resort.test", Secret: "wrong-horse"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Password: digest, Active: true}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated",
			req:  dto.LoginRequest{Identifier: "admin@resort.test", Secret: secret},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Password: digest, Active: false}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Identifier: "admin@resort.test", Secret: secret},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access", res.Token)
			assert.Equal(t, "refresh", res.RefreshToken)
			assert.Equal(t, "u-1", res.User.ID)
			assert.Equal(t, constant.RoleAdmin, res.User.Role)
		})
	}
}

func TestAuthService_LoginUnknownEmailTakesAHashCheck(t *testing.T) {
	secret := "correct-horse"
	digest := hashed(t, secret)

	login := func(user userModel.User) time.Duration {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		started := time.Now()
		_, err := f.svc.Login(context.Background(), dto.LoginRequest{Identifier: "someone@resort.test", Secret: "wrong-horse"})
		elapsed := time.Since(started)

		require.Error(t, err)
		assert.Equal(t, failure.InvalidCredentialsError, err)

		return elapsed
	}

	// warm the decoy so its one time hashing is not measured
	require.Error(t, password.VerifyDecoy(secret))

	unknown := login(userModel.User{})
	wrong := login(userModel.User{ID: "u-1", Password: digest, Active: true})

	assert.Greater(t, unknown, wrong/4, "unknown %s, wrong password %s", unknown, wrong)
}

func TestAuthService_Verify(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1")

	t.Run("active user", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Name: "Ana", Role: constant.RoleSuperAdmin, Active: true}, nil)

		res, err := f.svc.Verify(ctx)

		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Equal(t, constant.RoleSuperAdmin, res.User.Role)
	})

	t.Run("deactivated since login", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Active: false}, nil)

		_, err := f.svc.Verify(ctx)

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("no principal", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Verify(context.Background())

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes both tokens", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), "access", jwt.AccessToken).Return(claims("u-1", "a-1", jwt.AccessToken), nil)
		f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims("u-1", "r-1", jwt.RefreshToken), nil)
		f.sessions.EXPECT().Revoke(gomock.Any(), "a-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) error {
				assert.Positive(t, ttl)

				return nil
			})
		f.sessions.EXPECT().Revoke(gomock.Any(), "r-1", gomock.Any()).Return(nil)

		f.svc.Logout(context.Background(), "access", dto.LogoutRequest{RefreshToken: "refresh"})
	})

	t.Run("garbage tokens are ignored", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), "junk", jwt.AccessToken).Return(nil, jwt.ErrInvalidToken)

		f.svc.Logout(context.Background(), "junk", dto.LogoutRequest{})
	})

	t.Run("store failure is swallowed", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), "access", jwt.AccessToken).Return(claims("u-1", "a-1", jwt.AccessToken), nil)
		f.sessions.EXPECT().Revoke(gomock.Any(), "a-1", gomock.Any()).Return(errors.New("redis down"))

		f.svc.Logout(context.Background(), "access", dto.LogoutRequest{})
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	req := dto.RefreshTokenRequest{RefreshToken: "refresh"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "rotates the pair",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims("u-1", "r-1", jwt.RefreshToken), nil)
				f.sessions.EXPECT().IsRevoked(gomock.Any(), "r-1").Return(false, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Email: "a@resort.test", Role: constant.RoleSuperAdmin, Active: true}, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "u-1", "a@resort.test", constant.RoleSuperAdmin).Return(pair, nil)
				f.sessions.EXPECT().Revoke(gomock.Any(), "r-1", gomock.Any()).Return(nil)
			},
		},
		{
			name: "revocation store unavailable",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims("u-1", "r-1", jwt.RefreshToken), nil)
				f.sessions.EXPECT().IsRevoked(gomock.Any(), "r-1").Return(false, errors.New("redis down"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Active: true}, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pair, nil)
				f.sessions.EXPECT().Revoke(gomock.Any(), "r-1", gomock.Any()).Return(errors.New("redis down"))
			},
		},
		{
			name: "invalid token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "already used",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims("u-1", "r-1", jwt.RefreshToken), nil)
				f.sessions.EXPECT().IsRevoked(gomock.Any(), "r-1").Return(true, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "user deleted",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims("u-1", "r-1", jwt.RefreshToken), nil)
				f.sessions.EXPECT().IsRevoked(gomock.Any(), "r-1").Return(false, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.RefreshToken(context.Background(), req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access", res.Token)
			assert.Equal(t, int64(3600), res.ExpiresIn)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	digest := hashed(t, "old-password")
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1")

	t.Run("changed", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Password: digest, Active: true}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				stored, ok := fields[userModel.FieldPassword].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("new-password", stored))

				return nil
			})

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})

		require.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Password: digest, Active: true}, nil)

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "guess", NewPassword: "new-password"})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models/dto"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/auth"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/logger"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
)

// UserLookup resolves the principal of a token.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthMiddleware for authentication
type AuthMiddleware struct {
	jwtService *auth.JWTService
	users      UserLookup
	principals *gocache.Cache
}

// NewAuthMiddleware creates a new AuthMiddleware. Resolved users are cached for
// principalTTL; zero disables the cache.
func NewAuthMiddleware(jwtService *auth.JWTService, users UserLookup, principalTTL time.Duration) *AuthMiddleware {
	m := &AuthMiddleware{jwtService: jwtService, users: users}
	if principalTTL > 0 {
		m.principals = gocache.New(principalTTL, 2*principalTTL)
	}
	return m
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIErrorResponse(dto.NewErrorDetail(code, message)))
}

// JWTAuth middleware for JWT token validation. The token's user must still
// exist; a deleted account is rejected even with an unexpired token.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthenticated) {
				abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			} else {
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
			}
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
			} else {
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			}
			return
		}

		user, err := m.principal(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User no longer exists")
				return
			}
			logger.Error().Err(err).Int64("userID", claims.UserID).Msg("Failed to resolve token principal")
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewAPIErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextEmail, user.Email)
		c.Next()
	}
}

func (m *AuthMiddleware) principal(ctx context.Context, userID int64) (*models.User, error) {
	key := strconv.FormatInt(userID, 10)
	if m.principals != nil {
		if cached, ok := m.principals.Get(key); ok {
			return cached.(*models.User), nil
		}
	}

	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m.principals != nil {
		m.principals.SetDefault(key, user)
	}
	return user, nil
}

// GetUserID returns the authenticated user's id set by JWTAuth.
func GetUserID(c *gin.Context) (int64, error) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, apperrors.ErrUnauthenticated
	}
	id, ok := v.(int64)
	if !ok {
		return 0, apperrors.ErrUnauthenticated
	}
	return id, nil
}

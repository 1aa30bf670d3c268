package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	obscontext "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/observability/context"
	profiledomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile/domain"
)

const authCacheTTL = 5 * time.Minute

type authClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RequireAuth validates the bearer token issued by the hosted auth provider
// and loads the caller's profile, provisioning it on first sight. The token
// to profile mapping is cached briefly to keep the hot path off the database.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		profile, ok := s.authCache.Get(token)
		if !ok {
			claims, err := s.parseToken(token)
			if err != nil {
				s.log.Debug("token rejected", zap.Error(err))
				AbortWithError(c, ErrUnauthorized)
				return
			}

			profile, err = s.profileSvc.GetOrProvision(c.Request.Context(), claims.Subject, claims.Email)
			if err != nil {
				AbortWithError(c, ErrUnauthorized)
				return
			}
			s.authCache.Set(token, profile, authCacheTTL)
		}

		if profile.CompanyID == nil {
			AbortWithError(c, ErrForbidden)
			return
		}

		ctx := obscontext.WithUserID(c.Request.Context(), profile.UserID)
		ctx = obscontext.WithCompanyID(ctx, int64(*profile.CompanyID))
		c.Request = c.Request.WithContext(ctx)
		c.Set("company_id", int64(*profile.CompanyID))
		c.Set("user_id", profile.UserID)
		c.Set("profile", profile)

		c.Next()
	}
}

func (s *Server) parseToken(token string) (*authClaims, error) {
	claims := &authClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.AuthJWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (s *Server) currentProfile(c *gin.Context) *profiledomain.Profile {
	raw, ok := c.Get("profile")
	if !ok {
		return nil
	}
	profile, _ := raw.(*profiledomain.Profile)
	return profile
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rahulk/campusmate/internal/app/models"
	"github.com/rahulk/campusmate/internal/app/models/dto"
)

// Context keys set by the identity middleware
const (
	ContextSubjectID = "subjectID"
	ContextRole      = "role"
)

// PrincipalClaims is the token payload this service reads. Tokens are issued
// by the upstream auth service; here they are only verified and decoded.
type PrincipalClaims struct {
	SubjectID int64       `json:"sid"`
	Role      models.Role `json:"role"`
	jwt.RegisteredClaims
}

// IdentityMiddleware extracts the already-authenticated caller from requests
type IdentityMiddleware struct {
	secret []byte
	issuer string
}

// NewIdentityMiddleware creates a new identity middleware
func NewIdentityMiddleware(secret, issuer string) *IdentityMiddleware {
	return &IdentityMiddleware{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// RequireIdentity verifies the bearer token and puts the caller's id and
// role on the request context.
func (m *IdentityMiddleware) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Bearer token required")
			return
		}

		claims, err := m.parseClaims(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			message := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				code = dto.ErrorCodeExpiredToken
				message = "Token has expired"
			}
			abortUnauthorized(c, code, message)
			return
		}

		c.Set(ContextSubjectID, claims.SubjectID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RoleRequired rejects callers whose role claim does not match. Runs after
// RequireIdentity.
func (m *IdentityMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		role, ok := value.(models.Role)
		if ok {
			for _, allowed := range roles {
				if role == allowed {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Insufficient role")))
	}
}

func (m *IdentityMiddleware) parseClaims(tokenString string) (*PrincipalClaims, error) {
	claims := &PrincipalClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// SubjectID reads the caller's id set by RequireIdentity.
func SubjectID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextSubjectID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(code, message)))
}

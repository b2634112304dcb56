package managers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"fittrack-server/internal/schemas"
	"fittrack-server/internal/utils"
)

// adminSentinel is the claim value that grants access to the admin-only routes.
const adminSentinel = "root"

// JWTMgr handles token issuance, validation and the auth gate middleware.
type JWTMgr interface {
	GenerateJWT(claims jwt.Claims) (string, error)
	ValidateJWT(tokenString string) (jwt.MapClaims, error)
	GenerateClaims(userId int64, email string) jwt.Claims
	JWTMiddleware() gin.HandlerFunc
	AdminJWTMiddleware() gin.HandlerFunc
}

// JWTManager signs and verifies HS256 tokens with a shared secret.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

var errMalformedAuthHeader = errors.New("malformed authorization header")
var errInsufficientClaims = errors.New("token claims insufficient for this route")

// NewJWTManager creates a new JWTManager with the given secret and token lifetime.
func NewJWTManager(secret string, ttl time.Duration) JWTMgr {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// GenerateClaims generates the standard claim set for an authenticated user.
// The expiry is fixed at issuance time plus the configured lifetime.
func (jm *JWTManager) GenerateClaims(userId int64, email string) jwt.Claims {
	now := time.Now()
	return jwt.MapClaims{
		"id":    userId,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(jm.ttl).Unix(),
	}
}

// GenerateJWT generates a new signed token with the given claims.
func (jm *JWTManager) GenerateJWT(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jm.secret)
}

// ValidateJWT validates the given token and returns its claims if valid.
// Signature mismatch, malformed structure and passed expiry all fail.
func (jm *JWTManager) ValidateJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("invalid signing method %s", token.Method.Alg())
		}
		return jm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}

	return claims, nil
}

// requestClaims decodes the claims carried by the request's bearer token.
// A missing Authorization header yields an empty claim set rather than an
// error, so that the claim checks below produce the rejection.
func (jm *JWTManager) requestClaims(c *gin.Context) (jwt.MapClaims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return jwt.MapClaims{}, nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errMalformedAuthHeader
	}

	return jm.ValidateJWT(parts[1])
}

// JWTMiddleware guards the standard user routes. The decoded claims must
// contain both id and email; on success both are attached to the request
// context for the handlers.
func (jm *JWTManager) JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jm.requestClaims(c)
		if err != nil {
			utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		id, idOk := claims["id"].(float64)
		email, emailOk := claims["email"].(string)
		if !idOk || !emailOk || email == "" {
			utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errInsufficientClaims)
			c.Abort()
			return
		}

		c.Set(utils.UserIdKey, int64(id))
		c.Set(utils.EmailKey, email)
		c.Next()
	}
}

// AdminJWTMiddleware guards the admin-only routes. The decoded claims must
// carry the admin sentinel; ordinary user tokens are rejected.
func (jm *JWTManager) AdminJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jm.requestClaims(c)
		if err != nil {
			utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		if user, ok := claims["user"].(string); !ok || user != adminSentinel {
			utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errInsufficientClaims)
			c.Abort()
			return
		}

		c.Next()
	}
}

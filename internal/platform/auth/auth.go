package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims is the token payload issued at login. PatientID binds the session
// to the single clinical record the account may read and write.
type Claims struct {
	Username  string `json:"username"`
	PatientID string `json:"patient_id,omitempty"`
	jwt.RegisteredClaims
}

// NewToken mints a signed HS256 token for the given account.
func NewToken(secret, username, patientID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username:  username,
		PatientID: patientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry of a token string and returns
// its claims.
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Middleware returns echo middleware that requires a valid Bearer token and
// stores the caller's identity in the request context.
func Middleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header must be a Bearer token")
			}
			claims, err := ParseToken(secret, tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			c.Set("username", claims.Username)
			c.Set("patient_id", claims.PatientID)
			return next(c)
		}
	}
}

// DevMiddleware stamps every request with a fixed identity. Development mode
// only; it performs no verification at all.
func DevMiddleware(username, patientID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("username", username)
			c.Set("patient_id", patientID)
			return next(c)
		}
	}
}

// Username returns the authenticated account name from the request context.
func Username(c echo.Context) string {
	u, _ := c.Get("username").(string)
	return u
}

// PatientID returns the patient record id bound to the session, or "" when
// the account is not pinned to a specific record.
func PatientID(c echo.Context) string {
	id, _ := c.Get("patient_id").(string)
	return id
}

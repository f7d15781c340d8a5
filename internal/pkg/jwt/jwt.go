package jwt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
)

const (
	tokenTypeAccess = "access"
	tokenTypeSSE    = "sse"

	sseTokenLifetime = 5 * time.Minute
)

var ErrWrongTokenType = errors.New("unexpected token type")

// Claims are the session fields carried by every token this service issues.
type Claims struct {
	SessionID string
	Username  string
	Role      session.Role
}

type Service interface {
	GenerateAccessToken(sessionID, username string, role session.Role) (token string, expiresAt int64, err error)
	GenerateSSEToken(sessionID, username string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (Claims, error)
	// AccessClaims reads the claims of an already verified access token.
	AccessClaims(token jwt.Token) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenLifetime time.Duration
	tokenAuth           *jwtauth.JWTAuth
	revokedTokens       map[string]time.Time
	mu                  sync.RWMutex
	now                 func() time.Time
}

func NewJWTService(secretKey string, accessTokenLifetime time.Duration) Service {
	return &JWTService{
		accessTokenLifetime: accessTokenLifetime,
		tokenAuth:           jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:       make(map[string]time.Time),
		now:                 time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(sessionID, username string, role session.Role) (string, int64, error) {
	expiresAt := j.now().Add(j.accessTokenLifetime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"session_id": sessionID,
		"username":   username,
		"role":       string(role),
		"type":       tokenTypeAccess,
		"exp":        expiresAt,
	})
	if err != nil {
		return "", 0, fmt.Errorf("encode access token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// GenerateSSEToken issues a short-lived token that EventSource clients pass
// as a query parameter.
func (j *JWTService) GenerateSSEToken(sessionID, username string) (string, int, error) {
	expiresAt := j.now().Add(sseTokenLifetime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"session_id": sessionID,
		"username":   username,
		"type":       tokenTypeSSE,
		"exp":        expiresAt,
	})
	if err != nil {
		return "", 0, fmt.Errorf("encode sse token: %w", err)
	}
	return tokenString, int(sseTokenLifetime.Seconds()), nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Claims{}, err
	}
	return claimsOfType(token, tokenTypeSSE)
}

func (j *JWTService) AccessClaims(token jwt.Token) (Claims, error) {
	return claimsOfType(token, tokenTypeAccess)
}

func claimsOfType(token jwt.Token, want string) (Claims, error) {
	if token == nil {
		return Claims{}, jwt.ErrInvalidJWT()
	}
	tokenType, _ := token.Get("type")
	if tokenType != want {
		return Claims{}, ErrWrongTokenType
	}

	var c Claims
	sid, _ := token.Get("session_id")
	c.SessionID, _ = sid.(string)
	name, _ := token.Get("username")
	c.Username, _ = name.(string)
	role, _ := token.Get("role")
	if r, ok := role.(string); ok {
		c.Role = session.Role(r)
	}

	if c.SessionID == "" || c.Username == "" {
		return Claims{}, jwt.ErrInvalidJWT()
	}
	return c, nil
}

// RevokeToken blacklists token until it would have expired anyway.
func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	for t, revokedAt := range j.revokedTokens {
		if now.Sub(revokedAt) > j.accessTokenLifetime {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = now
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

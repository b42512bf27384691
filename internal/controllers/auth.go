package controllers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/adamanr/workflow_portal/internal/timer"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const TokenSize = 16

type AuthController struct {
	deps     *Dependens
	dir      *directory
	sessions *sessionRegistry
}

func NewAuthController(deps *Dependens) *AuthController {
	return &AuthController{
		deps:     deps,
		dir:      loadDirectory(),
		sessions: newSessionRegistry(),
	}
}

func tokenKey(tokenID string) string {
	return "access_token:" + tokenID
}

// Login checks the credentials against the fixed directory and opens a new
// session with its own workspace. The check-in timer is shared by every
// session of the same identity.
func (c *AuthController) Login(ctx context.Context, req *entity.LoginRequest) (*Session, error) {
	if err := c.deps.Validator.Struct(req); err != nil {
		c.deps.Logger.Warn("Invalid login request", slog.String("error", err.Error()))
		return nil, err
	}

	identity, ok := c.dir.authenticate(req.Email, req.Password)
	if !ok {
		c.deps.Metrics.Logins.WithLabelValues("failure").Inc()
		c.deps.Logger.Warn("Invalid login attempt", slog.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	tokenID, err := generateTokenID()
	if err != nil {
		c.deps.Logger.Error("Error generating token ID", slog.String("error", err.Error()))
		return nil, err
	}

	workspace := c.deps.Workspaces.Open()
	ttl := c.deps.Config.Session.TokenTTL
	if minutes := workspace.Settings().SessionTimeoutMinutes; minutes > 0 {
		ttl = time.Duration(minutes) * time.Minute
	}

	now := c.deps.Clock.Now()
	token, err := c.createToken(identity, tokenID, now, ttl)
	if err != nil {
		c.deps.Logger.Error("Error signing token", slog.String("error", err.Error()))
		return nil, err
	}

	if err = c.deps.Tokens.Set(ctx, tokenKey(tokenID), identity.ID, ttl).Err(); err != nil {
		c.deps.Logger.Error("Error setting access token", slog.String("error", err.Error()))
		return nil, err
	}

	session := &Session{
		Identity:  identity,
		TokenID:   tokenID,
		Token:     token,
		ExpiresAt: now.Add(ttl),
		Workspace: workspace,
	}
	c.sessions.add(session, func() *timer.Session {
		return timer.NewSession(c.deps.Clock, c.deps.Scheduler, timer.Granularity(c.deps.Config.Session.Granularity))
	})

	c.deps.Metrics.Logins.WithLabelValues("success").Inc()
	c.deps.Metrics.ActiveSessions.Inc()
	c.deps.Logger.Info("User logged in", slog.String("email", identity.Email), slog.String("role", string(identity.Role)))

	return session, nil
}

func (c *AuthController) createToken(identity entity.Identity, tokenID string, now time.Time, ttl time.Duration) (string, error) {
	claims := entity.Claims{
		UserID:  identity.ID,
		Email:   identity.Email,
		Role:    identity.Role,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.deps.Config.Server.JWTSecret))
}

func generateTokenID() (string, error) {
	b := make([]byte, TokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// Authenticate resolves an Authorization header value to a live session.
func (c *AuthController) Authenticate(ctx context.Context, authHeader string) (*Session, error) {
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == authHeader || tokenStr == "" {
		c.deps.Logger.Warn("Invalid bearer token")
		return nil, ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(tokenStr, &entity.Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(c.deps.Config.Server.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.deps.Clock.Now))
	if err != nil {
		c.deps.Logger.Warn("Error parsing token", slog.String("error", err.Error()))
		return nil, ErrUnauthorized
	}

	claims, ok := token.Claims.(*entity.Claims)
	if !ok || !token.Valid {
		return nil, ErrUnauthorized
	}

	if err = c.deps.Tokens.Get(ctx, tokenKey(claims.TokenID)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			c.deps.Logger.Warn("Token revoked", slog.String("token_id", claims.TokenID))
			return nil, ErrUnauthorized
		}

		c.deps.Logger.Error("Error reading token store", slog.String("error", err.Error()))
		return nil, err
	}

	session, ok := c.sessions.get(claims.TokenID)
	if !ok {
		c.deps.Logger.Warn("Session not found", slog.String("token_id", claims.TokenID))
		return nil, ErrUnauthorized
	}

	if !c.deps.Clock.Now().Before(session.ExpiresAt) {
		c.closeSession(ctx, session)
		return nil, ErrUnauthorized
	}

	return session, nil
}

// Logout revokes the token and drops the session. It never fails: a token
// store error is logged and the session is discarded anyway.
func (c *AuthController) Logout(ctx context.Context, session *Session) {
	c.closeSession(ctx, session)
	c.deps.Logger.Info("User logged out", slog.String("email", session.Identity.Email))
}

func (c *AuthController) closeSession(ctx context.Context, session *Session) {
	if err := c.deps.Tokens.Del(ctx, tokenKey(session.TokenID)).Err(); err != nil {
		c.deps.Logger.Error("Error deleting access token", slog.String("error", err.Error()))
	}

	if _, ok := c.sessions.remove(session.TokenID); ok {
		c.deps.Metrics.ActiveSessions.Dec()
	}
}

// PruneExpired closes sessions whose token lifetime has passed.
func (c *AuthController) PruneExpired(ctx context.Context) int {
	expired := c.sessions.expired(c.deps.Clock.Now())
	for _, s := range expired {
		if err := c.deps.Tokens.Del(ctx, tokenKey(s.TokenID)).Err(); err != nil {
			c.deps.Logger.Error("Error deleting expired token", slog.String("error", err.Error()))
		}
		c.deps.Metrics.ActiveSessions.Dec()
	}

	if len(expired) > 0 {
		c.deps.Logger.Info("Expired sessions pruned", slog.Int("count", len(expired)))
	}

	return len(expired)
}

func (c *AuthController) ActiveSessions() int {
	return c.sessions.len()
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sofianedj/boardhub/internal/auth"
	"github.com/sofianedj/boardhub/internal/config"
	"github.com/sofianedj/boardhub/internal/domain/user"
	"github.com/sofianedj/boardhub/internal/http/middlewares"
	"github.com/sofianedj/boardhub/internal/security"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, u user.User) (user.User, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        *auth.Manager
	cfg        config.Config
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwtManager *auth.Manager, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwtManager,
		cfg:        cfg,
	}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	u, err := h.userWriter.Create(cctx, user.New(req.Name, req.Email, hash, user.RoleUser))

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondConflict(ctx, "email_taken", "An account with this email already exists.")
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	RespondData(ctx, http.StatusCreated, gin.H{
		"user": u,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		// same answer whichever field was wrong
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	if !foundUser.Active {
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	token, expiresAt, err := h.jwt.GenerateToken(foundUser.ID, foundUser.Email, foundUser.Name, foundUser.Role)

	if err != nil {
		RespondInternal(ctx, "Could not generate token")
		return
	}

	h.setTokenCookie(ctx, token, expiresAt)

	RespondData(ctx, http.StatusOK, gin.H{
		"token": token,
		"user":  foundUser.Identity(),
	})
}

// Logout clears the cookie. The token itself stays valid until expiry:
// there is no server-side revocation.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	h.clearTokenCookie(ctx)

	RespondData(ctx, http.StatusOK, gin.H{
		"message": "logged out",
	})
}

// Me returns the identity the auth gate resolved, useful as a session
// probe for the SPA.
func (h *AuthHandler) Me(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	RespondData(ctx, http.StatusOK, gin.H{
		"identity": identity,
	})
}

// Cookie helpers. Max-age is derived from the token expiry so the
// cookie can never outlive the claim inside it.

func (h *AuthHandler) setTokenCookie(ctx *gin.Context, raw string, expiresAt time.Time) {
	secure := h.cfg.Env == "prod"

	maxAge := int(time.Until(expiresAt).Seconds())

	ctx.SetSameSite(http.SameSiteStrictMode)

	ctx.SetCookie(
		middlewares.TokenCookieName,
		raw,
		maxAge,
		"/",
		"",
		secure,
		true, // HttpOnly.
	)
}

func (h *AuthHandler) clearTokenCookie(ctx *gin.Context) {
	secure := h.cfg.Env == "prod"
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(
		middlewares.TokenCookieName,
		"",
		-1,
		"/",
		"",
		secure,
		true,
	)
}

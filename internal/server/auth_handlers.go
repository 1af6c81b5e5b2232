package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"goodquestions/internal/middleware"
	"goodquestions/internal/models"
	"goodquestions/internal/oauth"
	"goodquestions/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionCookieName = "session"
	tokenIssuer       = "goodquestions-api"
	tokenAudience     = "goodquestions-client"
	sessionTTL        = 7 * 24 * time.Hour
)

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, "Invalid request body"))
	}

	if req.DisplayName == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, "Display name, email, and password are required"))
	}
	if err := validation.ValidateDisplayName(req.DisplayName); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeDisplayNameInvalid, err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError(models.CodeDisplayNameTaken, "An account with this email already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}

	user := &models.User{
		DisplayName: strings.TrimSpace(req.DisplayName),
		Email:       req.Email,
		Password:    string(hashedPassword),
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return respondServiceError(c, createErr)
	}

	token, err := s.issueSession(c, user.ID)
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, "Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}
	if user == nil || user.Password == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.issueSession(c, user.ID)
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// GoogleAuth handles POST /api/auth/google. A first sign-in creates the
// account; when an invite token accompanies it, the invite is claimed as
// part of the same request.
func (s *Server) GoogleAuth(c *fiber.Ctx) error {
	var req struct {
		IDToken     string `json:"id_token"`
		InviteToken string `json:"invite_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, "Invalid request body"))
	}
	if req.IDToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeMissingToken, "id_token is required"))
	}

	identity, err := s.verifier.Verify(c.Context(), req.IDToken)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}

	user, err := s.userRepo.GetByGoogleID(c.Context(), identity.GoogleID)
	if err != nil {
		return respondServiceError(c, err)
	}

	created := false
	if user == nil {
		user, err = s.createGoogleUser(c, identity)
		if err != nil {
			return respondServiceError(c, err)
		}
		created = true

		if req.InviteToken != "" {
			if _, claimErr := s.inviteRepo.MarkAccepted(c.Context(), req.InviteToken, user.ID); claimErr != nil {
				middleware.Logger.WarnContext(c.UserContext(), "invite claim during sign-in failed",
					"error", claimErr)
			}
		}
	}

	token, err := s.issueSession(c, user.ID)
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// createGoogleUser registers a new account from a verified Google
// identity, deduplicating the display name when taken.
func (s *Server) createGoogleUser(c *fiber.Ctx, identity *oauth.Identity) (*models.User, error) {
	name := strings.TrimSpace(identity.DisplayName)
	if validation.ValidateDisplayName(name) != nil {
		name = "user-" + identity.GoogleID[:min(8, len(identity.GoogleID))]
	}

	googleID := identity.GoogleID
	user := &models.User{
		DisplayName: name,
		Email:       identity.Email,
		GoogleID:    &googleID,
	}

	err := s.userRepo.Create(c.Context(), user)
	if err == nil {
		return user, nil
	}
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Code != models.CodeDisplayNameTaken {
		return nil, err
	}

	// Name collision: retry once with a random suffix.
	user.ID = 0
	user.DisplayName = fmt.Sprintf("%s-%s", name, uuid.NewString()[:4])
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout handles POST /api/auth/logout. The session JTI is blacklisted
// until the token would have expired.
func (s *Server) Logout(c *fiber.Ctx) error {
	tokenString := c.Cookies(sessionCookieName)
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}

	if tokenString != "" && s.redis != nil {
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				jti, _ := claims["jti"].(string)
				exp, _ := claims["exp"].(float64)
				if jti != "" {
					ttl := time.Until(time.Unix(int64(exp), 0))
					if ttl > 0 {
						s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
					}
				}
			}
		}
	}

	s.clearSessionCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// issueSession generates a JWT for the user and sets it as the HttpOnly
// session cookie. The raw token is also returned for non-browser clients.
func (s *Server) issueSession(c *fiber.Ctx, userID uint) (string, error) {
	token, err := s.generateToken(userID)
	if err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		Secure:   s.config.Env == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return token, nil
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.config.Env == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// generateToken creates a JWT token for the given user ID
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(sessionTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to support revocation
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

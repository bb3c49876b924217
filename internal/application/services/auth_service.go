package services

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/zrasti/malleable-go/internal/infrastructure/observability/logging"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/performance"
	"github.com/zrasti/malleable-go/internal/infrastructure/security"
)

// AuthService handles editor authentication and auth token generation
type AuthService struct {
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
	editorPassword string
	jwtSecret      string
	tokenTTL       time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker, editorPassword, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		logger:         logger,
		perfTracker:    perfTracker,
		editorPassword: editorPassword,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
	}
}

// AuthResult holds authentication result data
type AuthResult struct {
	Token   string `json:"token,omitempty"`
	Role    string `json:"role,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AuthenticateEditor validates editor credentials and generates a JWT
func (a *AuthService) AuthenticateEditor(password string) *AuthResult {
	marker := a.perfTracker.StartOperation("auth_editor", "")
	defer marker.Complete()

	if a.editorPassword == "" {
		a.logger.Auth().Warn("Editor login attempted with no password configured")
		return &AuthResult{Success: false, Error: "Editing is not enabled"}
	}

	var role string
	if err := bcrypt.CompareHashAndPassword([]byte(a.editorPassword), []byte(password)); err == nil {
		role = "editor"
	}

	// Fallback for plaintext passwords during transition/testing
	if role == "" && password == a.editorPassword {
		role = "editor"
	}

	if role == "" {
		marker.SetSuccess(false)
		a.logger.Auth().Warn("Editor login rejected")
		return &AuthResult{Success: false, Error: "Invalid credentials"}
	}

	token, err := security.GenerateAuthToken(role, a.jwtSecret, a.tokenTTL)
	if err != nil {
		marker.SetError(err)
		a.logger.Auth().Error("Auth token generation failed", "error", err)
		return &AuthResult{Success: false, Error: "Token generation failed"}
	}

	marker.SetSuccess(true)
	a.logger.Auth().Info("Editor authenticated", "role", role)
	return &AuthResult{Token: token, Role: role, Success: true}
}

// ValidateAuthToken resolves an auth token to its role. Invalid or expired
// tokens simply mean the client is not an editor.
func (a *AuthService) ValidateAuthToken(token string) (string, bool) {
	return security.RoleFromAuthToken(token, a.jwtSecret)
}

// TokenTTL reports the lifetime applied to newly minted auth tokens.
func (a *AuthService) TokenTTL() time.Duration {
	return a.tokenTTL
}

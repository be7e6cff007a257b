package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/pokaque/proyecto-final-backend/errs"
	"github.com/pokaque/proyecto-final-backend/models"
)

type userStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Add(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// Claims is the JWT payload for a signed-in user. The role travels in the
// token, so a coordinator's role change takes effect at the next sign-in.
type Claims struct {
	Email string      `json:"email"`
	Name  string      `json:"nombre"`
	Role  models.Role `json:"rol"`
	jwt.RegisteredClaims
}

const tokenLifetime = 24 * time.Hour

// Auth issues identities: password accounts with bcrypt hashes and
// federated Google accounts, both materialized as rows in the user store
// and carried in short-lived JWTs.
type Auth struct {
	users      userStore
	jwtSecret  []byte
	oauth      *oauth2.Config
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewAuth(users userStore, jwtSecret, googleClientID, googleClientSecret, googleRedirectURL string) *Auth {
	return &Auth{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		oauth: &oauth2.Config{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
			RedirectURL:  googleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     log.With().Str("service", "auth").Logger(),
	}
}

// Register creates a password account.
func (a *Auth) Register(ctx context.Context, email, password, name string, role models.Role) (*models.User, error) {
	if email == "" {
		return nil, errs.NewValidationError("email", "email is required")
	}
	if password == "" {
		return nil, errs.NewValidationError("password", "password is required")
	}
	if name == "" {
		return nil, errs.NewValidationError("nombre", "name is required")
	}
	if !role.Valid() {
		return nil, errs.NewValidationError("rol", "must be estudiante, docente or coordinador")
	}

	existing, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.NewConflictError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
		Provider:     models.ProviderPassword,
	}
	if err := a.users.Add(ctx, user); err != nil {
		return nil, err
	}

	a.logger.Info().Str("userID", user.ID.String()).Str("rol", string(role)).Msg("user registered")
	return user, nil
}

// Login checks password credentials and returns the user with a signed
// token. Unknown email and bad password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, "", errs.NewAuthError("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", errs.NewAuthError("invalid email or password")
	}

	token, err := a.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken signs a session token for the user.
func (a *Auth) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
}

// VerifyToken parses and validates a session token.
func (a *Auth) VerifyToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.NewAuthError("invalid or expired token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errs.NewAuthError("malformed token claims")
	}
	return claims, nil
}

// GoogleLoginURL builds the consent-screen redirect for federated sign-in.
func (a *Auth) GoogleLoginURL(state string) string {
	return a.oauth.AuthCodeURL(state)
}

type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleCallback exchanges the authorization code, fetches the Google
// profile and signs the user in, creating the account on first sight with
// an empty role. Such accounts must complete registration before the role
// guards let them do anything.
func (a *Auth) GoogleCallback(ctx context.Context, code string) (*models.User, string, error) {
	tok, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, "", errs.NewAuthError("code exchange failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, "", errs.NewAuthError("fetching Google profile failed")
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Email == "" {
		return nil, "", errs.NewAuthError("unreadable Google profile")
	}

	user, err := a.users.FindByEmail(ctx, info.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		user = &models.User{
			ID:       uuid.New(),
			Email:    info.Email,
			Name:     info.Name,
			Provider: models.ProviderGoogle,
		}
		if err := a.users.Add(ctx, user); err != nil {
			return nil, "", err
		}
		a.logger.Info().Str("userID", user.ID.String()).Msg("federated user created, registration pending")
	}

	token, err := a.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CompleteRegistration sets name and role on a federated account that has
// not picked them yet. The returned token carries the new role.
func (a *Auth) CompleteRegistration(ctx context.Context, userID uuid.UUID, name string, role models.Role) (*models.User, string, error) {
	if name == "" {
		return nil, "", errs.NewValidationError("nombre", "name is required")
	}
	if !role.Valid() {
		return nil, "", errs.NewValidationError("rol", "must be estudiante, docente or coordinador")
	}

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if user.Role != "" {
		return nil, "", errs.NewConflictError("registration already completed")
	}

	user.Name = name
	user.Role = role
	if err := a.users.Update(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := a.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

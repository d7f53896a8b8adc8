package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v1"
	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"

	"github.com/xyz-asif/safetrip/internal/config"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

// adminClient is the part of the Firebase Admin auth client the provider uses.
type adminClient interface {
	GetUser(ctx context.Context, uid string) (*fbauth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *fbauth.UserToUpdate) (*fbauth.UserRecord, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseProvider implements IdentityProvider with the Admin SDK for trusted operations and the
// Identity Toolkit REST API for the credential flows the Admin SDK does not offer.
type FirebaseProvider struct {
	admin          adminClient
	toolkit        *identitytoolkit.Service
	googleClientID string
	validateGoogle func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

// InitFirebase initializes the Firebase Admin SDK and returns the Auth client
func InitFirebase(ctx context.Context, cfg *config.Config) (*fbauth.Client, error) {
	var opts []option.ClientOption
	if cfg.FirebaseServiceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseServiceAccountPath))
	}

	var fbCfg *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %v", err)
	}

	return client, nil
}

// NewFirebaseProvider wires the Admin SDK client and the Identity Toolkit service.
func NewFirebaseProvider(ctx context.Context, cfg *config.Config) (*FirebaseProvider, error) {
	if cfg.FirebaseAPIKey == "" {
		return nil, errors.New("FIREBASE_API_KEY is required for credential sign-in")
	}

	client, err := InitFirebase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(cfg.FirebaseAPIKey))
	if err != nil {
		return nil, fmt.Errorf("error creating identity toolkit client: %v", err)
	}

	return newFirebaseProvider(client, toolkit, cfg.GoogleClientID), nil
}

func newFirebaseProvider(admin adminClient, toolkit *identitytoolkit.Service, googleClientID string) *FirebaseProvider {
	return &FirebaseProvider{
		admin:          admin,
		toolkit:        toolkit,
		googleClientID: googleClientID,
		validateGoogle: idtoken.Validate,
	}
}

func (p *FirebaseProvider) SignUp(ctx context.Context, email, password, displayName string) (*Identity, error) {
	resp, err := p.toolkit.Accounts.SignUp(&identitytoolkit.GoogleCloudIdentitytoolkitV1SignUpRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}).Context(ctx).Do()
	if err != nil {
		return nil, translateToolkitError(err)
	}
	return p.lookup(ctx, resp.LocalId)
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	resp, err := p.toolkit.Accounts.SignInWithPassword(&identitytoolkit.GoogleCloudIdentitytoolkitV1SignInWithPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, translateToolkitError(err)
	}
	return p.lookup(ctx, resp.LocalId)
}

// SignInWithGoogle checks the Google ID token locally, then signs the user into Firebase with it
// so both providers agree on the UID.
func (p *FirebaseProvider) SignInWithGoogle(ctx context.Context, googleIDToken string) (*Identity, error) {
	if _, err := VerifyGoogleToken(ctx, p.validateGoogle, googleIDToken, p.googleClientID); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, err)
	}

	postBody := url.Values{}
	postBody.Set("id_token", googleIDToken)
	postBody.Set("providerId", "google.com")

	resp, err := p.toolkit.Accounts.SignInWithIdp(&identitytoolkit.GoogleCloudIdentitytoolkitV1SignInWithIdpRequest{
		PostBody:          postBody.Encode(),
		RequestUri:        "http://localhost",
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, translateToolkitError(err)
	}
	return p.lookup(ctx, resp.LocalId)
}

func (p *FirebaseProvider) SignOut(ctx context.Context, uid string) error {
	if err := p.admin.RevokeRefreshTokens(ctx, uid); err != nil {
		return translateAdminError(err)
	}
	return nil
}

func (p *FirebaseProvider) SendPasswordReset(ctx context.Context, email string) error {
	_, err := p.toolkit.Accounts.SendOobCode(&identitytoolkit.GoogleCloudIdentitytoolkitV1GetOobCodeRequest{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}).Context(ctx).Do()
	if err != nil {
		return translateToolkitError(err)
	}
	return nil
}

func (p *FirebaseProvider) UpdateUser(ctx context.Context, uid string, displayName, photoURL *string) error {
	if displayName == nil && photoURL == nil {
		return nil
	}

	params := &fbauth.UserToUpdate{}
	if displayName != nil {
		params = params.DisplayName(*displayName)
	}
	if photoURL != nil {
		params = params.PhotoURL(*photoURL)
	}

	if _, err := p.admin.UpdateUser(ctx, uid, params); err != nil {
		return translateAdminError(err)
	}
	return nil
}

func (p *FirebaseProvider) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := p.admin.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, translateAdminError(err)
	}
	return p.lookup(ctx, token.UID)
}

func (p *FirebaseProvider) lookup(ctx context.Context, uid string) (*Identity, error) {
	record, err := p.admin.GetUser(ctx, uid)
	if err != nil {
		return nil, translateAdminError(err)
	}
	return &Identity{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
		PhotoURL:    record.PhotoURL,
		PhoneNumber: record.PhoneNumber,
	}, nil
}

// GoogleUser represents the key information extracted from the validated Google ID Token
type GoogleUser struct {
	UID           string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}

// VerifyGoogleToken validates a Google ID token. An empty clientID skips the audience check.
func VerifyGoogleToken(ctx context.Context, validate func(context.Context, string, string) (*idtoken.Payload, error), idToken, clientID string) (*GoogleUser, error) {
	payload, err := validate(ctx, idToken, clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google token: %v", err)
	}

	googleUser := &GoogleUser{
		UID: payload.Subject,
	}

	if email, ok := payload.Claims["email"].(string); ok {
		googleUser.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		googleUser.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		googleUser.Picture = picture
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		googleUser.EmailVerified = verified
	}

	return googleUser, nil
}

var errBadCredentials = errors.New("invalid email or password")

// translateToolkitError maps Identity Toolkit error codes onto the service taxonomy.
func translateToolkitError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return apperrors.Unavailable("identity provider", err)
	}

	code := gerr.Message
	if i := strings.IndexAny(code, " :"); i > 0 {
		code = code[:i]
	}

	switch code {
	case "EMAIL_EXISTS":
		return apperrors.Invalid("email", "An account with this email already exists")
	case "INVALID_EMAIL", "MISSING_EMAIL":
		return apperrors.Invalid("email", "Please enter a valid email address")
	case "WEAK_PASSWORD", "MISSING_PASSWORD":
		return apperrors.Invalid("password", "Password should be at least 6 characters")
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED", "INVALID_IDP_RESPONSE":
		return fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, errBadCredentials)
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return apperrors.Unavailable("identity provider", err)
	}

	if gerr.Code >= http.StatusInternalServerError {
		return apperrors.Unavailable("identity provider", err)
	}
	return fmt.Errorf("identity provider: %w", err)
}

func translateAdminError(err error) error {
	switch {
	case fbauth.IsUserNotFound(err):
		return fmt.Errorf("identity: %w", apperrors.ErrNotFound)
	case fbauth.IsIDTokenInvalid(err), fbauth.IsIDTokenExpired(err), fbauth.IsIDTokenRevoked(err):
		return fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, err)
	}
	return apperrors.Unavailable("identity provider", err)
}

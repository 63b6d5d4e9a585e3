package client

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/radiologix/internal/client/models"
)

// Client is the backend contract. Every call that needs authentication takes
// the credential explicitly; the client itself holds no session state.
type Client interface {
	Login(ctx context.Context, email, password string) (Credential, error)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Me(ctx context.Context, cred Credential) (*models.User, error)
	SubmitScan(ctx context.Context, cred Credential, scanType models.ScanType, imageData string) (*models.ScanReport, error)
	ListScans(ctx context.Context, cred Credential) ([]models.ScanReport, error)
	GetScan(ctx context.Context, cred Credential, id string) (*models.ScanReport, error)
	Health(ctx context.Context) error
}

// Credential is the opaque access token issued by the backend.
type Credential struct {
	Token string
}

func (c Credential) IsZero() bool {
	return strings.TrimSpace(c.Token) == ""
}

// AuthorizationHeader returns the header value for c, or "" for a zero
// credential.
func (c Credential) AuthorizationHeader() string {
	if c.IsZero() {
		return ""
	}
	return "Bearer " + strings.TrimSpace(c.Token)
}

// ExpiresAt reads the exp claim when the token is a JWT. The signature is not
// verified, so the value is for display only. Opaque tokens and tokens
// without exp yield the zero time.
func (c Credential) ExpiresAt() time.Time {
	if c.IsZero() {
		return time.Time{}
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.Token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/roadwatch/roadwatch/internal/config"
	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/utils"
	"github.com/roadwatch/roadwatch/models"
)

type httpIdentityProvider struct {
	client *utils.HTTPClient
	apiKey string
	logger *logger.Logger

	mu      sync.RWMutex
	token   string
	account string
}

// NewHTTPIdentityProvider constructs an HTTP/REST implementation of
// [IdentityProvider]. It normalises and validates the base URL from
// providerCfg.BaseURL and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if providerCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPIdentityProvider(providerCfg config.Provider, log *logger.Logger) (IdentityProvider, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(providerCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider base url: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(providerCfg.RequestTimeout)

	return &httpIdentityProvider{client: client, apiKey: providerCfg.APIKey, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	IDToken string `json:"id_token"`
}

// Authenticate implements [IdentityProvider]. It POSTs the credential pair to
// POST /v1/sessions and derives the [AuthResult] from the returned ID token.
// Transport failures map to [ErrNetwork]; rejection statuses map through
// mapAuthHTTPError.
func (h *httpIdentityProvider) Authenticate(ctx context.Context, credential, secret string) (AuthResult, error) {
	var result signInResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Api-Key", h.apiKey).
		SetBody(signInRequest{Email: models.NormalizeCredential(credential), Password: secret}).
		SetResult(&result).
		Post("/v1/sessions")
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if err = mapAuthHTTPError(resp); err != nil {
		return AuthResult{}, err
	}

	claims, err := utils.ParseIDToken(result.IDToken)
	if err != nil {
		return AuthResult{}, fmt.Errorf("authenticate parse ID token: %w", err)
	}

	h.mu.Lock()
	h.token = result.IDToken
	h.account = claims.AccountID
	h.mu.Unlock()

	return AuthResult{
		AccountID: claims.AccountID,
		Email:     claims.Email,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

type lookupRequest struct {
	Email string `json:"email"`
}

type lookupResponse struct {
	Registered bool `json:"registered"`
}

// CredentialExists implements [IdentityProvider]. It POSTs the credential to
// POST /v1/accounts/lookup. A 501 response maps to [ErrLookupUnsupported] so
// callers can fall back to the identity index.
func (h *httpIdentityProvider) CredentialExists(ctx context.Context, credential string) (bool, error) {
	var result lookupResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Api-Key", h.apiKey).
		SetBody(lookupRequest{Email: models.NormalizeCredential(credential)}).
		SetResult(&result).
		Post("/v1/accounts/lookup")
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		// Lookup is supported and the account does not exist.
		return false, nil
	}
	if err = mapAuthHTTPError(resp); err != nil {
		return false, err
	}

	return result.Registered, nil
}

// SignOut implements [IdentityProvider]. It invalidates the provider-side
// session and always clears the locally held token, even when the remote
// call fails.
func (h *httpIdentityProvider) SignOut(ctx context.Context) error {
	h.mu.Lock()
	token := h.token
	h.token = ""
	h.account = ""
	h.mu.Unlock()

	if token == "" {
		return nil
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", h.apiKey).
		SetAuthToken(token).
		Delete("/v1/sessions/current")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return mapAuthHTTPError(resp)
}

// CurrentAccountID implements [IdentityProvider].
func (h *httpIdentityProvider) CurrentAccountID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.account
}

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pigbank.backend/internal/config"
	domainerrors "pigbank.backend/internal/domain/errors"
)

// Client implements the authorization-code flow against the external
// identity provider.
type Client struct {
	cfg        config.OAuthConfig
	httpClient *http.Client
}

// NewClient creates an identity provider client from config
func NewClient(cfg config.OAuthConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// UserInfo is the provider's profile payload for the authorized user
type UserInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
	Picture   string `json:"picture"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error"`
}

// AuthCodeURL builds the provider's consent page URL for the given state
func (c *Client) AuthCodeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	q.Set("state", state)
	return c.cfg.AuthURL + "?" + q.Encode()
}

// Exchange trades the authorization code for an access token
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("redirect_uri", c.cfg.RedirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domainerrors.Upstream("identity provider unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domainerrors.Upstream("failed to read token response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", domainerrors.Upstream(fmt.Sprintf("token exchange returned status %d", resp.StatusCode))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", domainerrors.Upstream("invalid token response")
	}
	if token.Error != "" || token.AccessToken == "" {
		return "", domainerrors.Upstream("token exchange rejected")
	}
	return token.AccessToken, nil
}

// FetchUserInfo loads the authorized user's profile
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.Upstream("identity provider unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domainerrors.Upstream(fmt.Sprintf("userinfo returned status %d", resp.StatusCode))
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, domainerrors.Upstream("invalid userinfo response")
	}
	if info.Email == "" {
		return nil, domainerrors.Upstream("identity provider returned no email")
	}
	return &info, nil
}

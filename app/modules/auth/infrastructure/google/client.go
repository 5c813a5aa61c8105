package authgoogle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	userdomain "github.com/Black-And-White-Club/prode/app/modules/user/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// UserInfoURL is the OpenID Connect userinfo endpoint.
const UserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Client runs the authorization-code flow against Google.
type Client struct {
	config      *oauth2.Config
	userInfoURL string
}

// NewClient returns nil when clientID is empty.
func NewClient(clientID, clientSecret, redirectURL string) *Client {
	if clientID == "" {
		return nil
	}
	return &Client{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoints.Google,
		},
		userInfoURL: UserInfoURL,
	}
}

// WithEndpoints points the client at other servers.
func (c *Client) WithEndpoints(endpoint oauth2.Endpoint, userInfoURL string) *Client {
	c.config.Endpoint = endpoint
	c.userInfoURL = userInfoURL
	return c
}

func (c *Client) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type userInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (c *Client) FetchProfile(ctx context.Context, code string) (userdomain.GoogleProfile, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return userdomain.GoogleProfile{}, fmt.Errorf("code exchange failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return userdomain.GoogleProfile{}, err
	}
	resp, err := c.config.Client(ctx, token).Do(req)
	if err != nil {
		return userdomain.GoogleProfile{}, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return userdomain.GoogleProfile{}, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return userdomain.GoogleProfile{}, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.Sub == "" {
		return userdomain.GoogleProfile{}, fmt.Errorf("userinfo without subject")
	}

	return userdomain.GoogleProfile{
		Sub:   info.Sub,
		Email: info.Email,
		Name:  info.Name,
		Image: info.Picture,
	}, nil
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"vocabdash/internal/domain"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", "",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return "", err
	}

	resp, err := c.send(c.httpClient, req)
	if err != nil {
		return "", err
	}

	var token tokenResponse
	if err := decode(resp.body, &token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("client: login response has no access token")
	}

	return token.AccessToken, nil
}

// Signup creates an account
func (c *Client) Signup(ctx context.Context, email, password string) (*domain.Account, error) {
	var account domain.Account
	err := c.call(ctx, http.MethodPost, "/auth/signup", "", credentials{Email: email, Password: password}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

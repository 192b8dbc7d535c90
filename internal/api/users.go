package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rentifyapp/rentify-client/internal/domain"
)

// CreateUserParams describes a new account.
type CreateUserParams struct {
	Name     string
	Email    string
	Password string
}

// CreateUser creates an account and returns the resulting user. The backend
// only returns the new ID, so the record merges it with the client-supplied
// name and email.
func (c *Client) CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	payload := map[string]string{
		"name":     params.Name,
		"email":    params.Email,
		"password": params.Password,
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/createUser", nil, payload, "unable to create user", &result); err != nil {
		return nil, err
	}

	return &domain.User{
		ID:    result.ID,
		Name:  params.Name,
		Email: params.Email,
	}, nil
}

// GetUser fetches a user by ID.
func (c *Client) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var raw rawUser
	if err := c.doJSON(ctx, http.MethodGet, "/user/"+url.PathEscape(userID), nil, nil, "unable to load user", &raw); err != nil {
		return nil, err
	}

	user := mapUser(raw)
	return &user, nil
}

// Health probes the backend liveness endpoint. The answer is the status code
// alone; an unreachable backend is simply not healthy.
func (c *Client) Health(ctx context.Context) bool {
	req, err := c.newRequest(ctx, http.MethodGet, "/healthz", nil, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("health check failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

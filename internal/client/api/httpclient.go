package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"chatadmin/internal/client/models"
	"chatadmin/internal/common"
)

// HTTPClient talks JSON over HTTP to the backend. Authenticated calls carry
// the bearer credential from the TokenSource and a fresh X-Request-Id.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewHTTPClient builds a client for the given base URL ("http://host:port").
// A zero timeout falls back to 30s; per-call deadlines still come from the
// caller's context.
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// detailResponse is the error body shape the server uses for rejections.
type detailResponse struct {
	Detail string `json:"detail"`
}

// do executes one round-trip. A nil body sends no payload; a non-nil out is
// filled from the response JSON. When authed is true the request is refused
// locally unless the TokenSource yields a credential.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any, authed bool) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	if authed {
		token, err := c.tokens.Token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// remoteError converts a non-2xx response into *common.RemoteError,
// extracting the server's detail message when the body carries one.
func remoteError(resp *http.Response) error {
	re := &common.RemoteError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		var d detailResponse
		if json.Unmarshal(data, &d) == nil {
			re.Detail = d.Detail
		}
	}
	return re
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session models.Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &session, false); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &stats, true); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *HTTPClient) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	var user models.User
	path := fmt.Sprintf("/api/admin/users/%d", id)
	if err := c.do(ctx, http.MethodPut, path, patch, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/users/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, name, email string) (*models.User, error) {
	body := map[string]string{"name": name, "email": email}
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", body, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UploadProfilePicture(ctx context.Context, encoded string) (string, error) {
	body := map[string]string{"profile_picture": encoded}
	var out struct {
		ProfilePicture string `json:"profile_picture"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/profile-picture", body, &out, true); err != nil {
		return "", err
	}
	return out.ProfilePicture, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, current, newPassword string) error {
	body := map[string]string{
		"current_password": current,
		"new_password":     newPassword,
	}
	return c.do(ctx, http.MethodPost, "/api/auth/change-password", body, nil, true)
}

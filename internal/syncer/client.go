package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"canvaspad/internal/canvas/model"
	"canvaspad/pkg/apperr"
)

// Client talks to the canvas API over its HTTP JSON contract. It is the
// Saver implementation a live session uses; the engine never touches the
// store directly.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{},
	}
}

// Canvas loads a canvas record, typically to seed a new session.
func (c *Client) Canvas(ctx context.Context, id string) (*model.Canvas, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/canvases/"+id, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Canvas *model.Canvas `json:"canvas"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Canvas, nil
}

// SaveSnapshot persists the current snapshot via a partial update.
func (c *Client) SaveSnapshot(ctx context.Context, id string, snapshot json.RawMessage) error {
	body, err := json.Marshal(map[string]json.RawMessage{"snapshot": snapshot})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.BaseURL+"/canvases/"+id, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return apperr.ErrNotFound
		case http.StatusUnauthorized:
			return apperr.ErrUnauthenticated
		case http.StatusBadRequest:
			return &apperr.ValidationError{Message: body.Error}
		default:
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Error)
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Package client is a Go SDK for the cv-engine API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hero4job/cv-engine/internal/drafts"
	"github.com/hero4job/cv-engine/internal/forms"
	"github.com/hero4job/cv-engine/internal/layouts"
	"github.com/hero4job/cv-engine/internal/models"
	"github.com/hero4job/cv-engine/internal/preview"
)

// Client is a Go SDK for the cv-engine API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new cv-engine client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// DocumentState is the full CV document plus its section visibility.
type DocumentState struct {
	Document        models.Document        `json:"document"`
	VisibleSections models.VisibleSections `json:"visibleSections"`
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	return err
}

// Document retrieves the CV document and visibility flags
func (c *Client) Document(ctx context.Context) (*DocumentState, error) {
	var state DocumentState
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/cv", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// PatchPersonal merge-patches the personal block: nil patch fields keep
// their stored value. The commit is best-effort on the server, so field
// errors can come back together with the updated data.
func (c *Client) PatchPersonal(ctx context.Context, patch models.PersonalPatch) (*models.PersonalData, forms.Errors, error) {
	var result struct {
		PersonalData models.PersonalData `json:"personalData"`
		FieldErrors  forms.Errors        `json:"fieldErrors"`
	}
	if _, err := c.do(ctx, http.MethodPatch, "/api/v1/cv/personal", patch, &result); err != nil {
		return nil, nil, err
	}
	return &result.PersonalData, result.FieldErrors, nil
}

// SetPhoto stores a profile image as a base64 data URL; an empty image
// removes it
func (c *Client) SetPhoto(ctx context.Context, image string) error {
	body := map[string]string{"image": image}
	_, err := c.do(ctx, http.MethodPut, "/api/v1/cv/personal/photo", body, nil)
	return err
}

// ReplaceSection replaces one section wholesale. Validation failure
// returns the field errors with a nil Go error; the document is unchanged
// in that case.
func (c *Client) ReplaceSection(ctx context.Context, section models.Section, form interface{}) (forms.Errors, error) {
	return c.do(ctx, http.MethodPut, "/api/v1/cv/"+url.PathEscape(string(section)), form, nil)
}

// SetSectionVisible toggles a section on the preview
func (c *Client) SetSectionVisible(ctx context.Context, section models.Section, visible bool) (models.VisibleSections, error) {
	body := map[string]bool{"visible": visible}
	var result struct {
		VisibleSections models.VisibleSections `json:"visibleSections"`
	}
	path := "/api/v1/cv/sections/" + url.PathEscape(string(section)) + "/visibility"
	if _, err := c.do(ctx, http.MethodPut, path, body, &result); err != nil {
		return nil, err
	}
	return result.VisibleSections, nil
}

// Preview retrieves the projected display tree for a layout
func (c *Client) Preview(ctx context.Context, layout string) (*preview.Tree, error) {
	path := "/api/v1/cv/preview"
	if layout != "" {
		path += "?layout=" + url.QueryEscape(layout)
	}
	var tree preview.Tree
	if _, err := c.do(ctx, http.MethodGet, path, nil, &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// Layouts retrieves all layout definitions
func (c *Client) Layouts(ctx context.Context) ([]*layouts.Definition, error) {
	var result struct {
		Layouts []*layouts.Definition `json:"layouts"`
		Total   int                   `json:"total"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/layouts", nil, &result); err != nil {
		return nil, err
	}
	return result.Layouts, nil
}

// Layout retrieves one layout definition by name
func (c *Client) Layout(ctx context.Context, name string) (*layouts.Definition, error) {
	var def layouts.Definition
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/layouts/"+url.PathEscape(name), nil, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// OpenDraft opens a working copy of a section form
func (c *Client) OpenDraft(ctx context.Context, section models.Section) (*drafts.Draft, error) {
	body := map[string]models.Section{"section": section}
	var d drafts.Draft
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/drafts", body, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDraft retrieves a draft by ID
func (c *Client) GetDraft(ctx context.Context, id string) (*drafts.Draft, error) {
	var d drafts.Draft
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/drafts/"+url.PathEscape(id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDraft replaces the draft payload with an edited one
func (c *Client) UpdateDraft(ctx context.Context, id string, payload forms.Payload) (*drafts.Draft, error) {
	var d drafts.Draft
	if _, err := c.do(ctx, http.MethodPut, "/api/v1/drafts/"+url.PathEscape(id), payload, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DiscardDraft deletes a draft without committing it
func (c *Client) DiscardDraft(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/drafts/"+url.PathEscape(id), nil, nil)
	return err
}

// AppendEntry adds an empty row to a list-section draft
func (c *Client) AppendEntry(ctx context.Context, id string) (*drafts.Draft, error) {
	var d drafts.Draft
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/drafts/"+url.PathEscape(id)+"/entries", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// RemoveEntry removes the row at index from a list-section draft
func (c *Client) RemoveEntry(ctx context.Context, id string, index int) (*drafts.Draft, error) {
	path := fmt.Sprintf("/api/v1/drafts/%s/entries/%d", url.PathEscape(id), index)
	var d drafts.Draft
	if _, err := c.do(ctx, http.MethodDelete, path, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// SetStillHere flips the still-here flag on a draft row
func (c *Client) SetStillHere(ctx context.Context, id string, index int, value bool) (*drafts.Draft, error) {
	path := fmt.Sprintf("/api/v1/drafts/%s/entries/%d/still-here", url.PathEscape(id), index)
	body := map[string]bool{"value": value}
	var d drafts.Draft
	if _, err := c.do(ctx, http.MethodPut, path, body, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// SubmitDraft commits a draft to the document. Validation failure returns
// the field errors with a nil Go error and keeps the draft open; the
// personal section commits best-effort and reports its errors through the
// success payload.
func (c *Client) SubmitDraft(ctx context.Context, id string) (forms.Errors, error) {
	var result struct {
		FieldErrors forms.Errors `json:"fieldErrors"`
	}
	errs, err := c.do(ctx, http.MethodPost, "/api/v1/drafts/"+url.PathEscape(id)+"/submit", nil, &result)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return errs, nil
	}
	return result.FieldErrors, nil
}

// do performs a request and decodes the response envelope. A successful
// envelope has its data decoded into out; a validation failure returns
// the field errors; anything else becomes a Go error.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (forms.Errors, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *struct {
			Code    string       `json:"code"`
			Message string       `json:"message"`
			Fields  forms.Errors `json:"fields"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		if result.Error != nil && len(result.Error.Fields) > 0 {
			return result.Error.Fields, nil
		}
		if result.Error != nil {
			return nil, fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
		}
		return nil, fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	if out != nil && len(result.Data) > 0 {
		if err := json.Unmarshal(result.Data, out); err != nil {
			return nil, fmt.Errorf("failed to unmarshal data: %w", err)
		}
	}

	return nil, nil
}

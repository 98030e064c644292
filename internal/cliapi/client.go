// Package cliapi is the thin HTTP layer of the requester CLI. Requesters are
// anonymous: no account, no cookie, identified only by their own share key.
package cliapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Owner is the public slice of an account returned by key resolution.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// File mirrors the server's external file shape.
type File struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	Category   *string   `json:"category"`
	RiskLevel  *string   `json:"riskLevel"`
	Verdict    *string   `json:"verdict"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// SharedFiles is the payload of a successful key resolution.
type SharedFiles struct {
	Owner Owner  `json:"owner"`
	Files []File `json:"files"`
}

// AccessRequest mirrors the server's external request shape.
type AccessRequest struct {
	ID           string `json:"id"`
	FileID       string `json:"fileId"`
	OwnerID      string `json:"ownerId"`
	RequesterKey string `json:"requesterKey"`
	Status       string `json:"status"`
	FileName     string `json:"fileName"`
}

// Client talks to a single CloudVault server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Resolve exchanges a share key for the owner and their file listing.
func (c *Client) Resolve(ctx context.Context, key string) (*SharedFiles, error) {
	var out SharedFiles
	if err := c.do(ctx, http.MethodGet, "/api/shared-files/"+key, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestAccess files a decryption request for one file. The owner id is sent
// as the literal "undefined": the server resolves it from the file record.
func (c *Client) RequestAccess(ctx context.Context, fileID, requesterKey string) (*AccessRequest, error) {
	payload := map[string]string{
		"fileId":       fileID,
		"ownerId":      "undefined",
		"requesterKey": requesterKey,
	}
	var out AccessRequest
	if err := c.do(ctx, http.MethodPost, "/api/access-requests", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckApproval asks whether the owner has approved the pair (file, key).
func (c *Client) CheckApproval(ctx context.Context, fileID, requesterKey string) (bool, error) {
	payload := map[string]string{"fileId": fileID, "requesterKey": requesterKey}
	var out struct {
		Approved bool `json:"approved"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/check-approval", payload, &out); err != nil {
		return false, err
	}
	return out.Approved, nil
}

// WaitForApproval polls CheckApproval until it turns true, the context is
// cancelled, or the interval ticker is stopped by an error.
func (c *Client) WaitForApproval(ctx context.Context, fileID, requesterKey string, interval time.Duration) (bool, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		approved, err := c.CheckApproval(ctx, fileID, requesterKey)
		if err != nil {
			return false, err
		}
		if approved {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= 300 {
		var serverErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &serverErr) == nil && serverErr.Error != "" {
			return fmt.Errorf("server status %d: %s", resp.StatusCode, serverErr.Error)
		}
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

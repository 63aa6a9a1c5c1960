package mixamo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// PrimaryCharacter returns the character currently selected as primary in
// the caller's Mixamo account.
func (c *Client) PrimaryCharacter(ctx context.Context) (*Character, error) {
	var resp primaryResponse
	if err := c.getJSON(ctx, "/characters/primary", nil, &resp); err != nil {
		return nil, fmt.Errorf("get primary character: %w", err)
	}
	if resp.PrimaryCharacterID == "" {
		return nil, errors.New("no primary character selected")
	}

	name := resp.PrimaryCharacterName
	if name == "" {
		name = "Unknown"
	}
	return &Character{ID: resp.PrimaryCharacterID, Name: name}, nil
}

// UploadCharacter sends a character model file for auto-rigging and waits
// for the rigging job to finish. The rigging monitor uses a larger attempt
// budget than exports since rigging runs for minutes.
func (c *Client) UploadCharacter(ctx context.Context, filePath, name string) (*Character, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}

	if name == "" {
		base := filepath.Base(filePath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open character file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read character file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/characters", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload character: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, wrapStatusError(resp.StatusCode, data)
	}

	var uploaded uploadResponse
	if err := json.Unmarshal(data, &uploaded); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if uploaded.UUID == "" {
		return nil, errors.New("no character id returned from upload")
	}

	if _, err := c.waitForJob(ctx, uploaded.UUID, name, riggingPollAttempts); err != nil {
		return nil, fmt.Errorf("character rigging: %w", err)
	}

	return &Character{ID: uploaded.UUID, Name: name}, nil
}

package storehouse

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vitrine-engine/internal/infra"
	"vitrine-engine/internal/pkg/config"
)

// Document is one fetched file plus the version token the host handed out
// for it. Commits are conditioned on that token.
type Document struct {
	Content []byte
	Version string
}

// Client talks to the versioned file host that stores the CSV documents.
// The host follows contents-API semantics: a read returns the file plus a
// version token, a write is rejected when the token no longer matches.
type Client struct {
	httpClient *http.Client
	cfg        config.StorehouseConfig
}

func NewClient(cfg config.StorehouseConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
	}
}

type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

type commitRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type commitResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// Fetch reads a document and its current version token. A missing document
// is reported as KindNotFound so callers can distinguish "start from empty"
// from a host outage.
func (c *Client) Fetch(ctx context.Context, path string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentsURL(path, true), nil)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindUnavailable, "failed to build fetch request", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindUnavailable, "file host unreachable", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, infra.WrapRepoErr(infra.KindNotFound, "document not found: "+path, nil)
	default:
		return nil, infra.WrapRepoErr(infra.KindUnavailable,
			fmt.Sprintf("unexpected status %d fetching %s", resp.StatusCode, path), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindUnavailable, "failed to read fetch response", err)
	}

	var parsed contentsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, infra.WrapRepoErr(infra.KindMalformed, "malformed contents response", err)
	}

	content, err := decodeContent(parsed)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindMalformed, "malformed document content", err)
	}

	return &Document{Content: content, Version: parsed.SHA}, nil
}

// Commit writes a document conditioned on the version token from a previous
// Fetch. An empty baseVersion creates the document. A stale token is
// reported as KindConflict; the caller decides whether to re-read and retry.
func (c *Client) Commit(ctx context.Context, path string, content []byte, baseVersion, message string) (string, error) {
	payload := commitRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  c.cfg.Branch,
		SHA:     baseVersion,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", infra.WrapRepoErr(infra.KindUnavailable, "failed to encode commit request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(path, false), bytes.NewReader(body))
	if err != nil {
		return "", infra.WrapRepoErr(infra.KindUnavailable, "failed to build commit request", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", infra.WrapRepoErr(infra.KindUnavailable, "file host unreachable", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict, http.StatusPreconditionFailed:
		return "", infra.WrapRepoErr(infra.KindConflict, "version token no longer current for "+path, nil)
	case http.StatusUnprocessableEntity:
		// The host answers 422 when the token references a stale blob.
		return "", infra.WrapRepoErr(infra.KindConflict, "stale version token for "+path, nil)
	default:
		return "", infra.WrapRepoErr(infra.KindUnavailable,
			fmt.Sprintf("unexpected status %d committing %s", resp.StatusCode, path), nil)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", infra.WrapRepoErr(infra.KindUnavailable, "failed to read commit response", err)
	}

	var parsed commitResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", infra.WrapRepoErr(infra.KindMalformed, "malformed commit response", err)
	}

	return parsed.Content.SHA, nil
}

func (c *Client) contentsURL(path string, withRef bool) string {
	u := fmt.Sprintf("%s/repos/%s/contents/%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Repository, path)
	if withRef && c.cfg.Branch != "" {
		u += "?ref=" + url.QueryEscape(c.cfg.Branch)
	}
	return u
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

func decodeContent(parsed contentsResponse) ([]byte, error) {
	if parsed.Encoding != "" && parsed.Encoding != "base64" {
		return nil, fmt.Errorf("unsupported content encoding %q", parsed.Encoding)
	}
	// The host wraps base64 payloads with newlines.
	compact := strings.ReplaceAll(parsed.Content, "\n", "")
	return base64.StdEncoding.DecodeString(compact)
}

// Package mixamo provides a client for the Mixamo animation service API:
// searching the catalog, exporting retargeted animations, polling export
// jobs and downloading the rendered files.
package mixamo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/raphaelgruber/animcp/internal/keywords"
	"github.com/raphaelgruber/animcp/internal/metrics"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://www.mixamo.com/api/v1"

	// apiKey is the fixed service key Mixamo expects on every request.
	apiKey = "mixamo2"

	// DefaultPollInterval and DefaultPollAttempts bound the export monitor
	// loop to roughly a one minute ceiling.
	DefaultPollInterval = 2 * time.Second
	DefaultPollAttempts = 30

	// riggingPollAttempts bounds the auto-rigging monitor after a character
	// upload. Rigging takes far longer than an export render.
	riggingPollAttempts = 120

	// maxSearchTerms caps how many expanded synonyms turn into remote
	// queries per search.
	maxSearchTerms = 3

	// maxSearchLimit is the largest page size the service accepts.
	maxSearchLimit = 96

	// DefaultSearchLimit is the result cap used when the caller passes none.
	DefaultSearchLimit = 24

	// searchType filters the catalog to animations and animation packs.
	searchType = "Motion,MotionPack"

	// FileExtension is the extension of every downloaded artifact.
	FileExtension = ".fbx"
)

// Config carries the client settings. Zero values fall back to defaults.
type Config struct {
	Token        string
	BaseURL      string
	Format       ExportFormat
	FPS          int
	IncludeSkin  bool
	ReduceKF     int
	SearchLimit  int
	PollInterval time.Duration
	PollAttempts int
	Metrics      *metrics.Collector
}

// Client talks to the Mixamo API. It holds one shared http.Client reused
// across calls; it is not safe for concurrent use while the token changes.
type Client struct {
	baseURL      string
	token        string
	format       ExportFormat
	fps          int
	includeSkin  bool
	reduceKF     int
	searchLimit  int
	pollInterval time.Duration
	pollAttempts int

	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Collector
}

// New creates a Mixamo client from cfg.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Format == "" {
		cfg.Format = FormatFBX2019
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.PollAttempts <= 0 {
		cfg.PollAttempts = DefaultPollAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		token:        strings.TrimSpace(cfg.Token),
		format:       cfg.Format,
		fps:          cfg.FPS,
		includeSkin:  cfg.IncludeSkin,
		reduceKF:     cfg.ReduceKF,
		searchLimit:  cfg.SearchLimit,
		pollInterval: cfg.PollInterval,
		pollAttempts: cfg.PollAttempts,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger:  logger,
		metrics: cfg.Metrics,
	}
}

// SetToken replaces the access token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

// HasToken reports whether an access token is set.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// Close releases idle connections. The client must not be used afterwards.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) requireToken() error {
	if c.token == "" {
		return fmt.Errorf("%w: no access token set", ErrNotAuthenticated)
	}
	return nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Api-Key", apiKey)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
}

// request performs an authenticated JSON API call and returns the raw body
// and status code. Transport and encoding failures come back as errors;
// status handling is up to the caller.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any) ([]byte, int, error) {
	if err := c.requireToken(); err != nil {
		return nil, 0, err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}

	return data, resp.StatusCode, nil
}

// getJSON performs a GET, requires a 2xx status and unmarshals the body
// into out when out is non-nil.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, code, err := c.request(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if code < 200 || code >= 300 {
		return wrapStatusError(code, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// ValidateToken checks the current token against the API with a minimal
// catalog request.
func (c *Client) ValidateToken(ctx context.Context) error {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("limit", "1")

	if err := c.getJSON(ctx, "/characters", q, nil); err != nil {
		return fmt.Errorf("validate token: %w", err)
	}
	return nil
}

// =============================================================================
// SEARCH
// =============================================================================

// Search expands query into synonym terms and aggregates one catalog page
// per term, deduplicating by animation ID in first-seen order, until limit
// unique results accumulate. A failing term is skipped; when every term
// fails and nothing accumulated, the error is ErrSearchFailed. An empty
// result with at least one successful response is not an error here.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Animation, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = c.searchLimit
	}
	pageLimit := limit
	if pageLimit > maxSearchLimit {
		pageLimit = maxSearchLimit
	}

	terms := keywords.Expand(query)
	if len(terms) > maxSearchTerms {
		terms = terms[:maxSearchTerms]
	}

	seen := make(map[string]bool)
	results := make([]Animation, 0, limit)
	failed := 0

	for _, term := range terms {
		if len(results) >= limit {
			break
		}

		page, err := c.searchTerm(ctx, term, pageLimit)
		if err != nil {
			if errors.Is(err, ErrNotAuthenticated) {
				return nil, err
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Debug("search term failed", "term", term, "error", err)
			failed++
			continue
		}

		for _, anim := range page.Results {
			if seen[anim.ID] {
				continue
			}
			seen[anim.ID] = true
			results = append(results, anim)
			if len(results) >= limit {
				break
			}
		}
	}

	if len(results) == 0 && failed > 0 && failed == len(terms) {
		return nil, ErrSearchFailed
	}
	return results, nil
}

func (c *Client) searchTerm(ctx context.Context, term string, limit int) (*searchPage, error) {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("query", term)
	q.Set("type", searchType)

	start := time.Now()
	var page searchPage
	err := c.getJSON(ctx, "/products", q, &page)
	c.metrics.RecordTiming(metrics.OpSearch, time.Since(start))
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Details fetches the per-character product metadata that seeds an export.
func (c *Client) Details(ctx context.Context, animationID, characterID string) (*ProductDetails, error) {
	q := url.Values{}
	q.Set("similar", "0")
	q.Set("character_id", characterID)

	start := time.Now()
	var details ProductDetails
	err := c.getJSON(ctx, "/products/"+url.PathEscape(animationID), q, &details)
	c.metrics.RecordTiming(metrics.OpMetadata, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("get animation details: %w", err)
	}
	return &details, nil
}

// =============================================================================
// EXPORT
// =============================================================================

func (c *Client) preferences() ExportPreferences {
	return ExportPreferences{
		Format:   string(c.format),
		Skin:     strconv.FormatBool(c.includeSkin),
		FPS:      strconv.Itoa(c.fps),
		ReduceKF: strconv.Itoa(c.reduceKF),
	}
}

// SubmitExport posts the export request for one animation onto one
// character. The service acknowledges with 200 or 202; anything else is a
// submission failure and is not retried.
func (c *Client) SubmitExport(ctx context.Context, characterID, productName string, details *ProductDetails) error {
	productType := "Motion"
	var gms map[string]any
	if details != nil {
		if details.Type != "" {
			productType = details.Type
		}
		gms = details.Details.GmsHash
	}

	body := exportRequest{
		CharacterID: characterID,
		ProductName: productName,
		Type:        productType,
		Preferences: c.preferences(),
		GmsHash:     []GmsHash{BuildGmsHash(gms)},
	}

	data, code, err := c.request(ctx, http.MethodPost, "/animations/export", nil, body)
	if err != nil {
		return err
	}
	if code != http.StatusOK && code != http.StatusAccepted {
		return wrapStatusError(code, data)
	}
	return nil
}

// WaitForExport polls the character's monitor endpoint until the export
// reaches a terminal state, the attempt budget runs out or ctx is
// cancelled. The returned job carries the terminal state; the error
// mirrors it (ErrExportFailed, ErrExportTimeout) so callers can branch.
func (c *Client) WaitForExport(ctx context.Context, characterID, animationName string) (*ExportJob, error) {
	return c.waitForJob(ctx, characterID, animationName, c.pollAttempts)
}

func (c *Client) waitForJob(ctx context.Context, characterID, animationName string, attempts int) (*ExportJob, error) {
	job := &ExportJob{
		CharacterID:   characterID,
		AnimationName: animationName,
		Status:        StatusProcessing,
	}
	path := "/characters/" + url.PathEscape(characterID) + "/monitor"

	for attempt := 1; attempt <= attempts; attempt++ {
		tick := time.Now()
		var status monitorResponse
		err := c.getJSON(ctx, path, nil, &status)
		c.metrics.RecordTiming(metrics.OpPoll, time.Since(tick))
		switch {
		case err == nil:
			switch status.Status {
			case "completed":
				job.Status = StatusCompleted
				job.DownloadURL = status.JobResult
				return job, nil
			case "failed":
				job.Status = StatusFailed
				job.Message = status.Message
				if job.Message == "" {
					job.Message = "export failed"
				}
				return job, fmt.Errorf("%w: %s", ErrExportFailed, job.Message)
			}
			// any other status keeps polling

		case errors.Is(err, ErrNotAuthenticated):
			job.Status = StatusFailed
			job.Message = err.Error()
			return job, err

		case ctx.Err() != nil:
			return job, ctx.Err()

		default:
			// transient poll failure, retry on the next tick
			c.logger.Debug("monitor poll failed", "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			if err := sleepCtx(ctx, c.pollInterval); err != nil {
				return job, err
			}
		}
	}

	job.Status = StatusTimedOut
	job.Message = fmt.Sprintf("no terminal status after %d attempts", attempts)
	return job, ErrExportTimeout
}

// ExportAnimation runs metadata fetch, submission and polling for one
// animation and returns the terminal job.
func (c *Client) ExportAnimation(ctx context.Context, characterID, animationID, nameOverride string) (*ExportJob, error) {
	details, err := c.Details(ctx, animationID, characterID)
	if err != nil {
		return nil, err
	}

	name := nameOverride
	if name == "" {
		name = details.Description
	}
	if name == "" {
		name = "animation_" + animationID
	}

	job := &ExportJob{CharacterID: characterID, AnimationName: name, Status: StatusPending}
	start := time.Now()
	if err := c.SubmitExport(ctx, characterID, name, details); err != nil {
		job.Status = StatusFailed
		job.Message = err.Error()
		return job, fmt.Errorf("submit export: %w", err)
	}

	job, err = c.WaitForExport(ctx, characterID, name)
	c.metrics.RecordTiming(metrics.OpExport, time.Since(start))
	return job, err
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

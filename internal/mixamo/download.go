package mixamo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DownloadTo streams the artifact at rawURL into path, creating the target
// directory on demand. The body is copied through a ".part" temp file that
// is renamed onto path only after a complete write, so a failed transfer
// never leaves a file that looks finished. Returns the bytes written.
// Download URLs are pre-signed; no auth headers are sent.
func (c *Client) DownloadTo(ctx context.Context, rawURL, path string) (int64, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, statusError(resp.StatusCode, body)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	written, err := io.Copy(f, resp.Body)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, fmt.Errorf("write file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, fmt.Errorf("sync file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("close file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("finalize file: %w", err)
	}

	c.metrics.RecordDownload(time.Since(start), written)
	return written, nil
}

// DownloadExport retrieves a finished job's artifact. Jobs that did not
// complete with a download reference are refused.
func (c *Client) DownloadExport(ctx context.Context, job *ExportJob, path string) (int64, error) {
	if !job.Downloadable() {
		status := ExportStatus("unknown")
		msg := ""
		if job != nil {
			status = job.Status
			msg = job.Message
		}
		if msg != "" {
			return 0, fmt.Errorf("job not downloadable: status %s: %s", status, msg)
		}
		return 0, fmt.Errorf("job not downloadable: status %s", status)
	}
	return c.DownloadTo(ctx, job.DownloadURL, path)
}

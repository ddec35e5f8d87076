// Package drive wraps the Google Drive API for knowledge-base scans:
// service-account authentication, folder listing and rate-limited file
// downloads.
package drive

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// maxDownloadSize caps single-file downloads (25MB).
const maxDownloadSize = 25 * 1024 * 1024

// listFields restricts file listings to the metadata the scanner uses.
const listFields = "nextPageToken, files(id, name, mimeType, size, modifiedTime)"

// Google allows 10 requests per second per user; stay below the quota.
const (
	requestsPerSecond = 8
	requestBurst      = 10
)

// File is the Drive metadata the scanner needs.
type File struct {
	ID           string
	Name         string
	MimeType     string
	Size         int64
	ModifiedTime string
}

// Client lists and downloads the files of one Drive folder.
type Client struct {
	svc      *drivev3.Service
	folderID string
	limiter  *rate.Limiter
}

// NewClient authenticates with a service account and returns a client
// scoped to folderID. The credentials argument is either a path to a
// service-account JSON key file or the JSON itself (the form used when
// the key is passed through an environment variable).
func NewClient(ctx context.Context, credentials, folderID string) (*Client, error) {
	if credentials == "" {
		return nil, fmt.Errorf("drive credentials are empty")
	}
	if folderID == "" {
		return nil, fmt.Errorf("drive folder ID is empty")
	}

	data := []byte(credentials)
	if raw, err := os.ReadFile(credentials); err == nil {
		data = raw
	}

	cfg, err := google.JWTConfigFromJSON(data, drivev3.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	svc, err := drivev3.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{
		svc:      svc,
		folderID: folderID,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}, nil
}

// FolderID returns the configured folder.
func (c *Client) FolderID() string {
	return c.folderID
}

// ListFiles returns every non-trashed file in the folder, following
// page tokens until the listing is exhausted.
func (c *Client) ListFiles(ctx context.Context) ([]File, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", c.folderID)

	var files []File
	pageToken := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := c.svc.Files.List().
			Q(query).
			Spaces("drive").
			Fields(listFields).
			PageSize(1000).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list drive folder: %w", err)
		}

		for _, f := range resp.Files {
			files = append(files, File{
				ID:           f.Id,
				Name:         f.Name,
				MimeType:     f.MimeType,
				Size:         f.Size,
				ModifiedTime: f.ModifiedTime,
			})
		}

		if resp.NextPageToken == "" {
			return files, nil
		}
		pageToken = resp.NextPageToken
	}
}

// Download fetches the raw bytes of a file, capped at maxDownloadSize.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}

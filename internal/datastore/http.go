package datastore

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// HTTPDataStore downloads files from the web. Uploading is not supported.
type HTTPDataStore struct {
	client *resty.Client
}

func NewHTTPDataStore() *HTTPDataStore {
	return &HTTPDataStore{client: resty.New()}
}

func NewHTTPDataStoreWithClient(client *resty.Client) *HTTPDataStore {
	return &HTTPDataStore{client: client}
}

func (s *HTTPDataStore) UploadData(_ context.Context, _ []string, _ bool) ([]UploadedFile, error) {
	return nil, fmt.Errorf("the HTTP data store does not support uploading data")
}

// DownloadData fetches the given URLs into a local directory. The local file
// name is taken from the Content-Disposition header when present, otherwise
// from the last URL path segment.
func (s *HTTPDataStore) DownloadData(ctx context.Context, remotePaths []string, localDirectory string, overwrite bool) ([]string, error) {
	var localPaths []string
	var result *multierror.Error

	for _, remotePath := range remotePaths {
		localPath, err := s.downloadFile(ctx, remotePath, localDirectory, overwrite)
		if err != nil {
			result = multierror.Append(result, errors.WithMessagef(err, "error downloading %s", remotePath))
			continue
		}
		localPaths = append(localPaths, localPath)
	}

	return localPaths, result.ErrorOrNil()
}

func (s *HTTPDataStore) downloadFile(ctx context.Context, remotePath, localDirectory string, overwrite bool) (string, error) {
	filename, err := s.remoteFilename(ctx, remotePath)
	if err != nil {
		return "", err
	}

	localPath := filepath.Join(localDirectory, filename)
	if err := ensureAbsent(localPath, overwrite); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(localPath), os.ModePerm); err != nil {
		return "", err
	}

	slog.Debug("downloading file", "url", remotePath, "target", localPath)
	response, err := s.client.R().SetContext(ctx).SetOutput(localPath).Get(remotePath)
	if err != nil {
		return "", err
	}
	if response.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("response status code: %d", response.StatusCode())
	}

	return localPath, nil
}

// remoteFilename resolves the local file name for a URL. A HEAD request is
// issued first so that Content-Disposition can override the URL basename.
func (s *HTTPDataStore) remoteFilename(ctx context.Context, remotePath string) (string, error) {
	response, err := s.client.R().SetContext(ctx).Head(remotePath)
	if err != nil {
		return "", err
	}
	if response.StatusCode() == http.StatusOK {
		if disposition := response.Header().Get("Content-Disposition"); disposition != "" {
			if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
				return params["filename"], nil
			}
		}
	}

	parsed, err := url.Parse(remotePath)
	if err != nil {
		return "", err
	}
	filename := path.Base(parsed.Path)
	if filename == "." || filename == "/" {
		return "", fmt.Errorf("cannot determine file name for %s", remotePath)
	}
	return filename, nil
}

// LoadData fetches a remote file into memory.
func (s *HTTPDataStore) LoadData(ctx context.Context, remotePath string) ([]byte, error) {
	response, err := s.client.R().SetContext(ctx).Get(remotePath)
	if err != nil {
		return nil, errors.WithMessagef(err, "error loading %s", remotePath)
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}
	return response.Body(), nil
}

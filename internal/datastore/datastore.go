package datastore

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// UploadedFile describes a file stored on a remote backend.
type UploadedFile struct {
	Filepath string `json:"filepath"`
	Filesize int64  `json:"filesize"`
}

// DataStore moves files between the local filesystem and a storage backend.
// Observation data and result figures are exchanged through implementations
// of this interface.
type DataStore interface {
	// UploadData stores local files on the backend and returns their remote locations.
	UploadData(ctx context.Context, filePaths []string, overwrite bool) ([]UploadedFile, error)
	// DownloadData fetches remote files into a local directory and returns the local paths.
	DownloadData(ctx context.Context, remotePaths []string, localDirectory string, overwrite bool) ([]string, error)
	// LoadData reads a remote file into memory.
	LoadData(ctx context.Context, remotePath string) ([]byte, error)
}

// ForURI selects the data store matching the URI scheme.
// http/https map to the HTTP store, s3 to the S3 store (configured from the
// environment), and file or a bare path to the filesystem store.
func ForURI(ctx context.Context, uri string) (DataStore, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid data store URI %q: %w", uri, err)
	}

	switch parsed.Scheme {
	case "http", "https":
		return NewHTTPDataStore(), nil
	case "s3":
		config, err := LoadS3Config()
		if err != nil {
			return nil, err
		}
		if config.Bucket == "" {
			config.Bucket = parsed.Host
		}
		return NewS3DataStore(ctx, config)
	case "file", "":
		return &FileSystemDataStore{}, nil
	default:
		return nil, fmt.Errorf("unsupported data store scheme: %s", parsed.Scheme)
	}
}

// relativePaths strips the longest common directory prefix from the given
// paths, so that a multi-file upload preserves the directory structure below
// the common base.
func relativePaths(filePaths []string) []string {
	if len(filePaths) == 0 {
		return nil
	}

	baseDir := filepath.Dir(filePaths[0])
	if len(filePaths) > 1 {
		baseDir = filepath.Dir(commonPrefix(filePaths))
	}

	relative := make([]string, 0, len(filePaths))
	for _, p := range filePaths {
		rel, err := filepath.Rel(baseDir, p)
		if err != nil {
			rel = filepath.Base(p)
		}
		relative = append(relative, rel)
	}
	return relative
}

func commonPrefix(paths []string) string {
	prefix := paths[0]
	for _, p := range paths[1:] {
		for !strings.HasPrefix(p, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}

// ensureAbsent returns an error when the target path exists and overwriting
// was not requested.
func ensureAbsent(localPath string, overwrite bool) error {
	if overwrite {
		return nil
	}
	if _, err := os.Stat(localPath); err == nil {
		return fmt.Errorf("target file path %q already exists, set overwrite to replace existing files", localPath)
	}
	return nil
}

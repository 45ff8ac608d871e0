package datastore

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileSystemDataStore reads and copies files on the local filesystem.
// It is used for observation data kept next to the test code.
type FileSystemDataStore struct {
	// BaseDirectory is the target of uploads. Empty means the working directory.
	BaseDirectory string
}

func (s *FileSystemDataStore) UploadData(_ context.Context, filePaths []string, overwrite bool) ([]UploadedFile, error) {
	relative := relativePaths(filePaths)
	uploaded := make([]UploadedFile, 0, len(filePaths))

	for i, localPath := range filePaths {
		targetPath := filepath.Join(s.BaseDirectory, relative[i])
		size, err := copyFile(localPath, targetPath, overwrite)
		if err != nil {
			return nil, errors.WithMessagef(err, "error uploading %s", localPath)
		}
		uploaded = append(uploaded, UploadedFile{Filepath: targetPath, Filesize: size})
	}

	return uploaded, nil
}

func (s *FileSystemDataStore) DownloadData(_ context.Context, remotePaths []string, localDirectory string, overwrite bool) ([]string, error) {
	localPaths := make([]string, 0, len(remotePaths))

	for _, remotePath := range remotePaths {
		localPath := filepath.Join(localDirectory, filepath.Base(remotePath))
		if _, err := copyFile(remotePath, localPath, overwrite); err != nil {
			return nil, errors.WithMessagef(err, "error downloading %s", remotePath)
		}
		localPaths = append(localPaths, localPath)
	}

	return localPaths, nil
}

func (s *FileSystemDataStore) LoadData(_ context.Context, remotePath string) ([]byte, error) {
	return os.ReadFile(remotePath)
}

func copyFile(sourcePath, targetPath string, overwrite bool) (int64, error) {
	if err := ensureAbsent(targetPath, overwrite); err != nil {
		return 0, err
	}

	source, err := os.Open(sourcePath)
	if err != nil {
		return 0, err
	}
	defer source.Close()

	if err := os.MkdirAll(filepath.Dir(targetPath), os.ModePerm); err != nil {
		return 0, err
	}

	target, err := os.Create(targetPath)
	if err != nil {
		return 0, err
	}
	defer target.Close()

	return io.Copy(target, source)
}

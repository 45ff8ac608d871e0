package client

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// TokenFileName is the name of the per-user token cache in the home directory.
const TokenFileName = ".hbptoken"

type tokenEntry struct {
	AccessToken string `json:"access_token"`
}

// TokenFilePath returns the location of the token cache file.
func TokenFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WithMessage(err, "cannot locate home directory")
	}
	return filepath.Join(home, TokenFileName), nil
}

// LoadToken returns the cached bearer token for the given username, or an
// empty string when no usable token is cached.
func LoadToken(path, username string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("no token cache found", "path", path)
		return ""
	}

	var entries map[string]tokenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("token cache is not valid JSON, ignoring", "path", path)
		return ""
	}

	return entries[username].AccessToken
}

// SaveToken stores a bearer token for the given username, preserving the
// entries of other users. The file is written with mode 0600.
func SaveToken(path, username, token string) error {
	entries := map[string]tokenEntry{}
	if data, err := os.ReadFile(path); err == nil {
		// best effort merge; a corrupt cache is overwritten
		_ = json.Unmarshal(data, &entries)
	}

	entries[username] = tokenEntry{AccessToken: token}

	data, err := json.Marshal(entries)
	if err != nil {
		return errors.WithMessage(err, "failed to marshal token cache")
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WithMessage(err, "failed to write token cache")
	}

	return nil
}

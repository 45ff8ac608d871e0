package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/apdavison/hbp-validation-client/internal/client"
	"github.com/apdavison/hbp-validation-client/internal/registry"
)

// ErrorBindingFlag is the message logged when a flag cannot be bound to viper.
const ErrorBindingFlag = "unable to bind flag"

// RestyClientKey is the context key under which tests inject a pre-configured
// REST client.
const RestyClientKey = registry.ContextKey("restyClient")

// CreateRestClient creates a new resty client pointed at the registry.
// Requests are retried with an exponential backoff.
func CreateRestClient(ctx context.Context, url string) *resty.Client {
	slog.Debug("Creating REST client...", "url", url)

	r, ok := ctx.Value(RestyClientKey).(*resty.Client)
	if !ok {
		r = resty.New()
	}

	return r.
		SetBaseURL(url).
		SetQueryParam("format", "json").
		SetRetryCount(3).
		SetRetryWaitTime(5 * time.Second).SetRetryMaxWaitTime(60 * time.Second)
}

// AuthenticateRestClient attaches a bearer token to the client. A cached
// token from the user's token file is reused when the registry still accepts
// it; otherwise a fresh login is performed and the new token cached.
func AuthenticateRestClient(r *resty.Client, username, password string) error {
	tokenPath, err := client.TokenFilePath()
	if err != nil {
		slog.Warn("token cache unavailable", "error", err)
		tokenPath = ""
	}

	if tokenPath != "" {
		if token := client.LoadToken(tokenPath, username); token != "" {
			r.SetAuthToken(token)
			if registry.CheckToken(r) {
				slog.Debug("using cached token", "username", username)
				return nil
			}
			slog.Debug("cached token rejected, logging in again", "username", username)
		}
	}

	slog.Info("Authenticating...")
	token, err := registry.Login(r, username, password)
	if err != nil {
		return err
	}
	r.SetAuthToken(token)

	if tokenPath != "" {
		if err := client.SaveToken(tokenPath, username, token); err != nil {
			slog.Warn("could not update token cache", "error", err)
		}
	}

	return nil
}

// parseFilters turns repeated attribute=value flags into a filter map.
func parseFilters(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	filters := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid filter %q, expected attribute=value", pair)
		}
		filters[key] = value
	}
	return filters, nil
}

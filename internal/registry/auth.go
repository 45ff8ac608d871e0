package registry

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Login exchanges a username and password for a bearer token.
// The token is not attached to the client; callers do that with SetAuthToken.
func Login(r *resty.Client, username, password string) (string, error) {
	slog.Debug("logging in", "username", username, "password", "[REDACTED]")

	response, err := r.R().
		SetBody(&Credentials{Username: username, Password: password}).
		SetResult(&Token{}).
		Post(AuthEndpoint)
	if err != nil {
		return "", errors.WithMessage(err, "could not login")
	}

	if response.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("login response status code: %d", response.StatusCode())
	}

	token := response.Result().(*Token)
	if token == nil || token.AccessToken == "" {
		return "", fmt.Errorf("no token returned")
	}

	return token.AccessToken, nil
}

// CheckToken reports whether the bearer token currently attached to the
// client is still accepted by the registry.
func CheckToken(r *resty.Client) bool {
	response, err := r.R().
		SetQueryParam("python_client", "true").
		SetQueryParam("parameters", "all").
		Get(AttributeOptionsEndpoint)
	if err != nil {
		slog.Debug("token check failed", "error", err)
		return false
	}
	return response.StatusCode() == http.StatusOK
}

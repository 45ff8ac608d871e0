package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/apdavison/hbp-validation-client/internal/datastore"
)

// Order determines how retrieved results are grouped by the registry.
type Order string

const (
	OrderNone  Order = ""
	OrderTest  Order = "test"
	OrderModel Order = "model"
)

// Valid returns true if the Order is one the registry understands.
func (o Order) Valid() bool {
	return o == OrderNone || o == OrderTest || o == OrderModel
}

// GetResult retrieves a test result by its UUID. The flat envelope is
// requested (order left empty); for a single result grouped by test or model,
// use ListResultsOrdered with an "id" filter instead.
func GetResult(r *resty.Client, resultID uuid.UUID) (*Result, error) {
	req := r.R().
		SetQueryParam("id", resultID.String()).
		SetQueryParam("order", string(OrderNone)).
		SetResult(&resultEnvelope{})
	response, err := req.Get(ResultsEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorGettingResult)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	envelope := response.Result().(*resultEnvelope)
	if envelope == nil || len(envelope.Results) != 1 {
		return nil, fmt.Errorf("expected exactly one result in response")
	}

	result := envelope.Results[0]
	if result.IsNil() {
		return nil, fmt.Errorf("error unmarshalling result")
	}
	slog.Debug("result", "result", result)
	return &result, nil
}

// ListResults retrieves the test results satisfying the given filters.
// Valid filter keys include id, model_version_id, test_code_id and project.
func ListResults(r *resty.Client, filters map[string]string) ([]Result, error) {
	req := r.R().
		SetQueryParam("order", string(OrderNone)).
		SetResult(&resultEnvelope{})
	if filters != nil {
		req.SetQueryParams(filters)
	}
	response, err := req.Get(ResultsEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorListingResults)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	envelope := response.Result().(*resultEnvelope)
	if envelope == nil {
		return nil, fmt.Errorf("error unmarshalling results")
	}
	slog.Debug("results", "count", len(envelope.Results))
	return envelope.Results, nil
}

// ListResultsOrdered retrieves results grouped by test or by model.
// The grouped envelopes are keyed by record UUID, so the raw JSON document
// is returned for the caller to render.
func ListResultsOrdered(r *resty.Client, order Order, filters map[string]string) (json.RawMessage, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("order needs to be specified as 'test', 'model' or ''")
	}

	req := r.R().SetQueryParam("order", string(order))
	if filters != nil {
		req.SetQueryParams(filters)
	}
	response, err := req.Get(ResultsEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorListingResults)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	return json.RawMessage(response.Body()), nil
}

// RegisterResult stores a new test result in the registry.
// The ModelVersionID and TestCodeID of the result must be set. The platform
// fingerprint is filled in when left empty.
func RegisterResult(r *resty.Client, result Result) (uuid.UUID, error) {
	if result.ModelVersionID == uuid.Nil || result.TestCodeID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("model version id and test code id are required for registering a result")
	}

	if result.Platform == "" {
		result.Platform = GetPlatformInfo().String()
	}

	req := r.R().
		SetBody([]Result{result}).
		SetResult(&createdListResponse{})
	response, err := req.Post(ResultsEndpoint)
	if err != nil {
		return uuid.Nil, errors.WithMessage(err, ErrorRegisteringResult)
	}

	if response.StatusCode() != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("response status code: %d, body: %s", response.StatusCode(), response.String())
	}

	created := response.Result().(*createdListResponse)
	if created == nil || len(created.UUID) != 1 {
		return uuid.Nil, fmt.Errorf("no uuid returned for created result")
	}
	slog.Info("result registered", "uuid", created.UUID[0])
	return created.UUID[0], nil
}

// RegisterResultWithData uploads files related to a test run (e.g. figures)
// to the given data store and registers the result with its storage
// locations filled in.
func RegisterResultWithData(ctx context.Context, r *resty.Client, result Result, store datastore.DataStore, filePaths []string) (uuid.UUID, error) {
	uploaded, err := store.UploadData(ctx, filePaths, false)
	if err != nil {
		return uuid.Nil, errors.WithMessage(err, "error uploading result data")
	}

	locations := make([]string, 0, len(uploaded))
	for _, f := range uploaded {
		locations = append(locations, f.Filepath)
	}
	result.ResultsStorage = strings.Join(locations, ",")

	return RegisterResult(r, result)
}

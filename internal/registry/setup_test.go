package registry_test

import (
	"embed"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/apdavison/hbp-validation-client/internal/registry"
)

//go:embed testdata
var mockData embed.FS

const (
	modelsPath           = "testdata/models.json"
	modelInstancesPath   = "testdata/model-instances.json"
	imagesPath           = "testdata/images.json"
	testsPath            = "testdata/tests.json"
	testInstancesPath    = "testdata/test-instances.json"
	resultsPath          = "testdata/results.json"
	attributeOptionsPath = "testdata/attribute-options.json"
	authTokenPath        = "testdata/auth-token.json"
	createdPath          = "testdata/created.json"
	createdListPath      = "testdata/created-list.json"
)

var (
	modelUUID         = uuid.MustParse("87a64b2f-1c5a-4e3f-9c1d-6b2a4f9d8c3e")
	modelInstanceUUID = uuid.MustParse("f32776c7-658d-4998-9d2c-5a1c1b3e8d4f")
	imageUUID         = uuid.MustParse("2b45e0e2-8e3f-4a1b-8f2d-3c4b5a6d7e8f")
	testUUID          = uuid.MustParse("4b3c2d1e-5f6a-4789-a0b1-c2d3e4f5a6b7")
	testInstanceUUID  = uuid.MustParse("1a2b3c4d-5e6f-4a8b-9c0d-1e2f3a4b5c6d")
	resultUUID        = uuid.MustParse("9f8e7d6c-5b4a-4392-8170-6e5d4c3b2a19")
	createdUUID       = uuid.MustParse("3c9a2f1e-7b4d-4c5e-8a6f-1d2e3c4b5a69")
)

func writeFixture(t *testing.T, rw http.ResponseWriter, path string, code int) {
	data, err := mockData.ReadFile(path)
	require.NoError(t, err)
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	_, err = rw.Write(data)
	require.NoError(t, err)
}

// recordHandler mimics a registry record endpoint: GET returns the fixture,
// POST creates, PUT edits.
func recordHandler(t *testing.T, getPath, createdPath string) http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			writeFixture(t, rw, getPath, http.StatusOK)
		case http.MethodPost:
			writeFixture(t, rw, createdPath, http.StatusCreated)
		case http.MethodPut:
			rw.WriteHeader(http.StatusAccepted)
		default:
			http.Error(rw, "Invalid request method", http.StatusMethodNotAllowed)
		}
	}
}

func setup(t *testing.T) *resty.Client {
	mux := http.NewServeMux()
	mux.HandleFunc(registry.ModelsEndpoint, recordHandler(t, modelsPath, createdPath))
	mux.HandleFunc(registry.ModelInstancesEndpoint, recordHandler(t, modelInstancesPath, createdListPath))
	mux.HandleFunc(registry.ModelImagesEndpoint, recordHandler(t, imagesPath, createdListPath))
	mux.HandleFunc(registry.TestsEndpoint, recordHandler(t, testsPath, createdPath))
	mux.HandleFunc(registry.TestInstancesEndpoint, recordHandler(t, testInstancesPath, createdListPath))
	mux.HandleFunc(registry.ResultsEndpoint, recordHandler(t, resultsPath, createdListPath))
	mux.HandleFunc(registry.AttributeOptionsEndpoint, func(rw http.ResponseWriter, req *http.Request) {
		writeFixture(t, rw, attributeOptionsPath, http.StatusOK)
	})
	mux.HandleFunc(registry.AuthEndpoint, func(rw http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			http.Error(rw, "Invalid request method", http.StatusMethodNotAllowed)
			return
		}
		writeFixture(t, rw, authTokenPath, http.StatusOK)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return resty.New().SetBaseURL(server.URL)
}

package registry_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/apdavison/hbp-validation-client/internal/registry"
	"github.com/apdavison/hbp-validation-client/testutils"
)

func TestGetTest(t *testing.T) {
	r := setup(t)

	test, err := registry.GetTest(r, testUUID)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(testutils.SampleTest(), *test))
}

func TestGetTestByAlias(t *testing.T) {
	r := setup(t)

	test, err := registry.GetTestByAlias(r, "sample-test")
	require.NoError(t, err)
	require.Equal(t, testUUID, test.ID)
}

func TestListTests(t *testing.T) {
	r := setup(t)

	tests, err := registry.ListTests(r, map[string]string{"cell_type": "Pyramidal Cell"})
	require.NoError(t, err)
	require.Len(t, tests, 1)
}

func TestAddTest(t *testing.T) {
	r := setup(t)

	test := testutils.SampleTest()
	test.ID = uuid.Nil
	code := testutils.SampleTestInstance()
	code.ID = uuid.Nil

	createdID, err := registry.AddTest(r, registry.TestRegistration{TestData: test, CodeData: code})
	require.NoError(t, err)
	require.Equal(t, createdUUID, createdID)
}

// The registry stores "no alias" as null, not as the empty string.
func TestAddTest_EmptyAliasSubmittedAsNull(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(registry.AttributeOptionsEndpoint, func(rw http.ResponseWriter, req *http.Request) {
		writeFixture(t, rw, attributeOptionsPath, http.StatusOK)
	})
	mux.HandleFunc(registry.TestsEndpoint, func(rw http.ResponseWriter, req *http.Request) {
		require.Equal(t, http.MethodPost, req.Method)
		var body struct {
			TestData map[string]any `json:"test_data"`
		}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		alias, present := body.TestData["alias"]
		require.True(t, present)
		require.Nil(t, alias)
		writeFixture(t, rw, createdPath, http.StatusCreated)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	r := resty.New().SetBaseURL(server.URL)

	test := testutils.SampleTest()
	test.ID = uuid.Nil
	alias := ""
	test.Alias = &alias

	createdID, err := registry.AddTest(r, registry.TestRegistration{TestData: test})
	require.NoError(t, err)
	require.Equal(t, createdUUID, createdID)
}

func TestAddTest_InvalidAttribute(t *testing.T) {
	r := setup(t)

	test := testutils.SampleTest()
	test.ScoreType = "vibes"

	_, err := registry.AddTest(r, registry.TestRegistration{TestData: test})
	require.Error(t, err)
	require.ErrorContains(t, err, "score_type")
}

func TestEditTest(t *testing.T) {
	r := setup(t)

	test := testutils.SampleTest()
	test.Protocol = "Updated protocol"

	require.NoError(t, registry.EditTest(r, test))
}

func TestEditTest_MissingID(t *testing.T) {
	r := setup(t)

	test := testutils.SampleTest()
	test.ID = uuid.Nil

	err := registry.EditTest(r, test)
	require.Error(t, err)
	require.ErrorContains(t, err, "test id is required")
}

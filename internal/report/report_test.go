package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"github.com/apdavison/hbp-validation-client/internal/registry"
	"github.com/apdavison/hbp-validation-client/internal/report"
	"github.com/apdavison/hbp-validation-client/testutils"
)

var resultID = uuid.MustParse(testutils.ResultUUIDStr)

func setupClient(t *testing.T) *resty.Client {
	client := resty.New().SetBaseURL(testutils.RootUrl)
	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func registerRecordResponders(t *testing.T) {
	for _, endpoint := range []testutils.Endpoint{
		{Method: "GET", Url: "=~^" + testutils.ResultsUrl, Responder: testutils.ResultResponder()},
		{Method: "GET", Url: "=~^" + testutils.ModelInstancesUrl, Responder: testutils.ModelInstanceResponder()},
		{Method: "GET", Url: "=~^" + testutils.ModelsUrl, Responder: testutils.ModelResponder()},
		{Method: "GET", Url: "=~^" + testutils.TestInstancesUrl, Responder: testutils.TestInstanceResponder()},
		{Method: "GET", Url: "=~^" + testutils.TestsUrl, Responder: testutils.TestResponder()},
	} {
		testutils.SetupMockResponder(endpoint)
	}
}

func TestFetch(t *testing.T) {
	client := setupClient(t)
	registerRecordResponders(t)

	data, included, err := report.Fetch(client, []uuid.UUID{resultID})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{resultID}, included)

	require.Len(t, data.Results, 1)
	require.Len(t, data.Models, 1)
	require.Len(t, data.ModelInstances, 1)
	require.Len(t, data.Tests, 1)
	require.Len(t, data.TestInstances, 1)

	// collections stay positionally aligned
	require.Equal(t, data.Results[0].ModelVersionID, data.ModelInstances[0].ID)
	require.Equal(t, data.ModelInstances[0].ModelID, data.Models[0].ID)
	require.Equal(t, data.Results[0].TestCodeID, data.TestInstances[0].ID)
	require.Equal(t, data.TestInstances[0].TestDefinitionID, data.Tests[0].ID)
}

func TestFetch_SkipsUnresolvableResults(t *testing.T) {
	client := setupClient(t)
	// only the result endpoint is available, so the model lookup fails
	testutils.SetupMockResponder(testutils.Endpoint{
		Method: "GET", Url: "=~^" + testutils.ResultsUrl, Responder: testutils.ResultResponder(),
	})

	data, included, err := report.Fetch(client, []uuid.UUID{resultID})
	require.NoError(t, err)
	require.Empty(t, included)
	require.Empty(t, data.Results)
}

func TestRender(t *testing.T) {
	data := &report.Data{
		RegistryURL:    testutils.RootUrl,
		GeneratedOn:    time.Date(2024, time.March, 1, 16, 54, 2, 0, time.UTC),
		Results:        []registry.Result{testutils.SampleResult()},
		Models:         []registry.Model{testutils.SampleModel()},
		ModelInstances: []registry.ModelInstance{testutils.SampleModelInstance()},
		Tests:          []registry.Test{testutils.SampleTest()},
		TestInstances:  []registry.TestInstance{testutils.SampleTestInstance()},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, data))

	html := buf.String()
	require.Contains(t, html, "Sample Model")
	require.Contains(t, html, "sample-model")
	require.Contains(t, html, "Sample Test")
	require.Contains(t, html, "0.42")
	require.Contains(t, html, testutils.ResultUUIDStr)
	require.Contains(t, html, "passed")
}

func TestGenerate(t *testing.T) {
	client := setupClient(t)
	registerRecordResponders(t)

	outputPath := filepath.Join(t.TempDir(), "report.html")

	included, writtenPath, err := report.Generate(client, []uuid.UUID{resultID}, outputPath)
	require.NoError(t, err)
	require.Equal(t, outputPath, writtenPath)
	require.Equal(t, []uuid.UUID{resultID}, included)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Contains(t, string(data), testutils.RootUrl)
}

func TestGenerate_NoValidResults(t *testing.T) {
	client := setupClient(t)

	_, _, err := report.Generate(client, []uuid.UUID{resultID}, filepath.Join(t.TempDir(), "report.html"))
	require.Error(t, err)
	require.ErrorContains(t, err, "no valid results")
}

package testutils

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jarcoal/httpmock"

	"github.com/apdavison/hbp-validation-client/internal/registry"
)

const (
	ModelUUIDStr         = "87a64b2f-1c5a-4e3f-9c1d-6b2a4f9d8c3e"
	ModelInstanceUUIDStr = "f32776c7-658d-4998-9d2c-5a1c1b3e8d4f"
	ModelImageUUIDStr    = "2b45e0e2-8e3f-4a1b-8f2d-3c4b5a6d7e8f"
	TestUUIDStr          = "4b3c2d1e-5f6a-4789-a0b1-c2d3e4f5a6b7"
	TestInstanceUUIDStr  = "1a2b3c4d-5e6f-4a8b-9c0d-1e2f3a4b5c6d"
	ResultUUIDStr        = "9f8e7d6c-5b4a-4392-8170-6e5d4c3b2a19"
)

var CreatedDate = time.Date(2024, time.March, 1, 16, 54, 2, 651000000, time.UTC) // "2024-03-01T16:54:02.651Z"

// Endpoint describes a mocked registry endpoint for table-driven CLI tests.
type Endpoint struct {
	Method    string
	Url       string
	Responder httpmock.Responder
}

// SetupMockResponder registers a responder for the given endpoint.
func SetupMockResponder(endpoint Endpoint) {
	httpmock.RegisterResponder(endpoint.Method, endpoint.Url, endpoint.Responder)
}

var AuthResponder, _ = httpmock.NewJsonResponder(http.StatusOK, registry.Token{AccessToken: "ya29.Gl0UBZ3"})

var NotFoundResponder, _ = httpmock.NewJsonResponder(http.StatusNotFound, nil)
var GarbageResponder, _ = httpmock.NewJsonResponder(http.StatusOK, "{\"foo\": \"bar\"")

func mustJsonResponder(code int, body any) httpmock.Responder {
	responder, err := httpmock.NewJsonResponder(code, body)
	if err != nil {
		panic(err)
	}
	return responder
}

// SampleModel returns a model record consistent with SampleAttributeOptions.
func SampleModel() registry.Model {
	alias := "sample-model"
	return registry.Model{
		ID:           uuid.MustParse(ModelUUIDStr),
		Name:         "Sample Model",
		Alias:        &alias,
		Author:       "A. Researcher",
		Organization: "HBP-SP6",
		Species:      "Mouse (Mus musculus)",
		BrainRegion:  "Hippocampus",
		CellType:     "Pyramidal Cell",
		ModelType:    "Single Cell",
		Description:  "A sample model for testing",
	}
}

func SampleModelInstance() registry.ModelInstance {
	return registry.ModelInstance{
		ID:        uuid.MustParse(ModelInstanceUUIDStr),
		ModelID:   uuid.MustParse(ModelUUIDStr),
		Source:    "https://github.com/example/sample-model",
		Version:   "1.0",
		Timestamp: &CreatedDate,
	}
}

func SampleModelImage() registry.ModelImage {
	return registry.ModelImage{
		ID:      uuid.MustParse(ModelImageUUIDStr),
		ModelID: uuid.MustParse(ModelUUIDStr),
		URL:     "http://example.com/figure.png",
		Caption: "Morphology overview",
	}
}

func SampleTest() registry.Test {
	alias := "sample-test"
	return registry.Test{
		ID:           uuid.MustParse(TestUUIDStr),
		Name:         "Sample Test",
		Alias:        &alias,
		Author:       "B. Researcher",
		Species:      "Mouse (Mus musculus)",
		Age:          "P14",
		BrainRegion:  "Hippocampus",
		CellType:     "Pyramidal Cell",
		DataModality: "electrophysiology",
		TestType:     "single cell activity",
		ScoreType:    "z-score",
		Protocol:     "Somatic current injection",
		DataLocation: "s3://validation-data/observations.json",
		DataType:     "Mean, SD",
	}
}

func SampleTestInstance() registry.TestInstance {
	return registry.TestInstance{
		ID:               uuid.MustParse(TestInstanceUUIDStr),
		TestDefinitionID: uuid.MustParse(TestUUIDStr),
		Repository:       "https://github.com/example/sample-test",
		Path:             "sampletest.SampleTest",
		Version:          "1.0",
		Timestamp:        &CreatedDate,
	}
}

func SampleResult() registry.Result {
	passed := true
	return registry.Result{
		ID:             uuid.MustParse(ResultUUIDStr),
		ModelVersionID: uuid.MustParse(ModelInstanceUUIDStr),
		TestCodeID:     uuid.MustParse(TestInstanceUUIDStr),
		ResultsStorage: "s3://validation-data/results",
		Score:          0.42,
		Passed:         &passed,
		Platform:       `{"system_name":"linux"}`,
		Project:        "sample-project",
		Timestamp:      &CreatedDate,
	}
}

// SampleAttributeOptions covers the attribute values used by the sample records.
func SampleAttributeOptions() registry.AttributeOptions {
	return registry.AttributeOptions{
		CellType:       []string{"Pyramidal Cell", "Granule Cell"},
		TestType:       []string{"single cell activity", "network activity"},
		ScoreType:      []string{"z-score", "p-value"},
		BrainRegion:    []string{"Hippocampus", "Cortex"},
		ModelType:      []string{"Single Cell", "Network"},
		DataModalities: []string{"electrophysiology", "morphology"},
		Species:        []string{"Mouse (Mus musculus)", "Rat (Rattus rattus)"},
		Organization:   []string{"HBP-SP6", "HBP-SP4"},
	}
}

func ModelResponder() httpmock.Responder {
	return mustJsonResponder(http.StatusOK, map[string]any{"models": []registry.Model{SampleModel()}})
}

func ModelInstanceResponder() httpmock.Responder {
	return mustJsonResponder(http.StatusOK, map[string]any{"instances": []registry.ModelInstance{SampleModelInstance()}})
}

func TestResponder() httpmock.Responder {
	return mustJsonResponder(http.StatusOK, map[string]any{"tests": []registry.Test{SampleTest()}})
}

func TestInstanceResponder() httpmock.Responder {
	return mustJsonResponder(http.StatusOK, map[string]any{"test_codes": []registry.TestInstance{SampleTestInstance()}})
}

func ResultResponder() httpmock.Responder {
	return mustJsonResponder(http.StatusOK, map[string]any{"results": []registry.Result{SampleResult()}})
}

func AttributeOptionsResponder() httpmock.Responder {
	return mustJsonResponder(http.StatusOK, SampleAttributeOptions())
}

// CreatedResponder mimics a record creation endpoint returning a single UUID.
func CreatedResponder(id uuid.UUID) httpmock.Responder {
	return mustJsonResponder(http.StatusCreated, map[string]any{"uuid": id})
}

// CreatedListResponder mimics a creation endpoint that accepts a list of records.
func CreatedListResponder(ids ...uuid.UUID) httpmock.Responder {
	return mustJsonResponder(http.StatusCreated, map[string]any{"uuid": ids})
}

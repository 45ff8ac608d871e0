package registry

import (
	"time"

	"github.com/google/uuid"

	"github.com/apdavison/hbp-validation-client/internal/utils"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Token struct {
	AccessToken string `json:"access_token"`
}

// Model is a model description record in the model catalog.
type Model struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Alias        *string         `json:"alias"`
	Author       string          `json:"author"`
	Organization string          `json:"organization"`
	Private      bool            `json:"private"`
	Species      string          `json:"species"`
	BrainRegion  string          `json:"brain_region"`
	CellType     string          `json:"cell_type"`
	ModelType    string          `json:"model_type"`
	Description  string          `json:"description"`
	AppID        string          `json:"app_id,omitempty"`
	Instances    []ModelInstance `json:"instances,omitempty"`
	Images       []ModelImage    `json:"images,omitempty"`
}

// IsNil returns true if the Model is nil
func (m Model) IsNil() bool {
	return m.ID == uuid.Nil && m.Name == ""
}

// normalizeAlias maps an empty alias to null, which is how the registry
// represents "no alias".
func normalizeAlias(alias *string) *string {
	if alias != nil && *alias == "" {
		return nil
	}
	return alias
}

// Equal returns true if the Model is equal to the other Model.
// Embedded instances and images are not compared.
func (m Model) Equal(other Model) bool {
	return m.ID == other.ID &&
		m.Name == other.Name &&
		utils.EqualStringPtr(m.Alias, other.Alias) &&
		m.Author == other.Author &&
		m.Organization == other.Organization &&
		m.Private == other.Private &&
		m.Species == other.Species &&
		m.BrainRegion == other.BrainRegion &&
		m.CellType == other.CellType &&
		m.ModelType == other.ModelType &&
		m.Description == other.Description
}

// ModelInstance is a specific version of a model in the model catalog.
type ModelInstance struct {
	ID         uuid.UUID  `json:"id"`
	ModelID    uuid.UUID  `json:"model_id"`
	Source     string     `json:"source"`
	Version    string     `json:"version"`
	Parameters string     `json:"parameters"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// IsNil returns true if the ModelInstance is nil
func (mi ModelInstance) IsNil() bool {
	return mi.ID == uuid.Nil && mi.ModelID == uuid.Nil
}

// ModelImage is a figure attached to a model description.
type ModelImage struct {
	ID      uuid.UUID `json:"id"`
	ModelID uuid.UUID `json:"model_id"`
	URL     string    `json:"url"`
	Caption string    `json:"caption"`
}

// IsNil returns true if the ModelImage is nil
func (img ModelImage) IsNil() bool {
	return img.ID == uuid.Nil && img.URL == ""
}

// Test is a validation test definition in the test library.
type Test struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Alias        *string        `json:"alias"`
	Author       string         `json:"author"`
	Species      string         `json:"species"`
	Age          string         `json:"age"`
	BrainRegion  string         `json:"brain_region"`
	CellType     string         `json:"cell_type"`
	DataModality string         `json:"data_modality"`
	TestType     string         `json:"test_type"`
	ScoreType    string         `json:"score_type"`
	Protocol     string         `json:"protocol"`
	DataLocation string         `json:"data_location"`
	DataType     string         `json:"data_type"`
	Publication  string         `json:"publication"`
	Codes        []TestInstance `json:"codes,omitempty"`
}

// IsNil returns true if the Test is nil
func (t Test) IsNil() bool {
	return t.ID == uuid.Nil && t.Name == ""
}

// TestInstance is a specific version of the code implementing a test.
type TestInstance struct {
	ID               uuid.UUID  `json:"id"`
	TestDefinitionID uuid.UUID  `json:"test_definition_id"`
	Repository       string     `json:"repository"`
	Path             string     `json:"path"`
	Version          string     `json:"version"`
	Timestamp        *time.Time `json:"timestamp,omitempty"`
}

// IsNil returns true if the TestInstance is nil
func (ti TestInstance) IsNil() bool {
	return ti.ID == uuid.Nil && ti.TestDefinitionID == uuid.Nil
}

// Result records the outcome of running a test instance against a model instance.
type Result struct {
	ID              uuid.UUID  `json:"id"`
	ModelVersionID  uuid.UUID  `json:"model_version_id"`
	TestCodeID      uuid.UUID  `json:"test_code_id"`
	ResultsStorage  string     `json:"results_storage"`
	Score           float64    `json:"score"`
	NormalizedScore float64    `json:"normalized_score"`
	Passed          *bool      `json:"passed"`
	Platform        string     `json:"platform"`
	Project         string     `json:"project"`
	Timestamp       *time.Time `json:"timestamp,omitempty"`
}

// IsNil returns true if the Result is nil
func (r Result) IsNil() bool {
	return r.ID == uuid.Nil && r.ModelVersionID == uuid.Nil && r.TestCodeID == uuid.Nil
}

// Equal returns true if the Result is equal to the other Result
func (r Result) Equal(other Result) bool {
	return r.ID == other.ID &&
		r.ModelVersionID == other.ModelVersionID &&
		r.TestCodeID == other.TestCodeID &&
		r.ResultsStorage == other.ResultsStorage &&
		r.Score == other.Score &&
		r.NormalizedScore == other.NormalizedScore &&
		utils.EqualBoolPtr(r.Passed, other.Passed) &&
		r.Platform == other.Platform &&
		r.Project == other.Project &&
		utils.EqualTimePtr(r.Timestamp, other.Timestamp)
}

// AttributeOptions lists the valid values for the controlled record attributes.
type AttributeOptions struct {
	CellType       []string `json:"cell_type"`
	TestType       []string `json:"test_type"`
	ScoreType      []string `json:"score_type"`
	BrainRegion    []string `json:"brain_region"`
	ModelType      []string `json:"model_type"`
	DataModalities []string `json:"data_modalities"`
	Species        []string `json:"species"`
	Organization   []string `json:"organization"`
}

type modelEnvelope struct {
	Models []Model `json:"models"`
}

type modelInstanceEnvelope struct {
	Instances []ModelInstance `json:"instances"`
}

type modelImageEnvelope struct {
	Images []ModelImage `json:"images"`
}

type testEnvelope struct {
	Tests []Test `json:"tests"`
}

type testInstanceEnvelope struct {
	TestCodes []TestInstance `json:"test_codes"`
}

type resultEnvelope struct {
	Results []Result `json:"results"`
}

// createdResponse is returned by record creation endpoints.
type createdResponse struct {
	UUID uuid.UUID `json:"uuid"`
}

// createdListResponse is returned by creation endpoints that accept a list of records.
type createdListResponse struct {
	UUID []uuid.UUID `json:"uuid"`
}

type ContextKey string

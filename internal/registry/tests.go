package registry

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// GetTest retrieves a test definition from the library by UUID.
func GetTest(r *resty.Client, testID uuid.UUID) (*Test, error) {
	return getTest(r, map[string]string{"id": testID.String()})
}

// GetTestByAlias retrieves a test definition from the library by its alias.
func GetTestByAlias(r *resty.Client, alias string) (*Test, error) {
	return getTest(r, map[string]string{"alias": alias})
}

func getTest(r *resty.Client, params map[string]string) (*Test, error) {
	req := r.R().
		SetQueryParams(params).
		SetResult(&testEnvelope{})
	response, err := req.Get(TestsEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorGettingTest)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	envelope := response.Result().(*testEnvelope)
	if envelope == nil || len(envelope.Tests) != 1 {
		return nil, fmt.Errorf("expected exactly one test in response")
	}

	test := envelope.Tests[0]
	if test.IsNil() {
		return nil, fmt.Errorf("error unmarshalling test")
	}
	slog.Debug("test", "test", test)
	return &test, nil
}

// ListTests retrieves the test definitions satisfying the given filters.
// Valid filter keys include name, alias, author, species, age, brain_region,
// cell_type, data_modality, test_type, score_type, data_type and publication.
func ListTests(r *resty.Client, filters map[string]string) ([]Test, error) {
	req := r.R().SetResult(&testEnvelope{})
	if filters != nil {
		req.SetQueryParams(filters)
	}
	response, err := req.Get(TestsEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorListingTests)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	envelope := response.Result().(*testEnvelope)
	if envelope == nil {
		return nil, fmt.Errorf("error unmarshalling tests")
	}
	slog.Debug("tests", "count", len(envelope.Tests))
	return envelope.Tests, nil
}

// TestRegistration bundles a new test definition with the code metadata of
// its initial instance.
type TestRegistration struct {
	TestData Test         `json:"test_data"`
	CodeData TestInstance `json:"code_data"`
}

// AddTest registers a new test definition, together with its first instance,
// in the test library. The test attributes are validated against the
// registry's controlled vocabularies before the request is sent.
func AddTest(r *resty.Client, reg TestRegistration) (uuid.UUID, error) {
	options, err := GetAttributeOptions(r, "all")
	if err != nil {
		return uuid.Nil, errors.WithMessage(err, ErrorAddingTest)
	}
	if err := options.ValidateTest(reg.TestData); err != nil {
		return uuid.Nil, err
	}
	reg.TestData.Alias = normalizeAlias(reg.TestData.Alias)

	req := r.R().
		SetBody(&reg).
		SetResult(&createdResponse{})
	response, err := req.Post(TestsEndpoint)
	if err != nil {
		return uuid.Nil, errors.WithMessage(err, ErrorAddingTest)
	}

	if response.StatusCode() != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("response status code: %d, body: %s", response.StatusCode(), response.String())
	}

	created := response.Result().(*createdResponse)
	if created == nil || created.UUID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("no uuid returned for created test")
	}
	slog.Info("test added", "uuid", created.UUID)
	return created.UUID, nil
}

// EditTest updates an existing test definition. The test ID must be set.
// Test instances cannot be edited here; use EditTestInstance.
func EditTest(r *resty.Client, test Test) error {
	if test.ID == uuid.Nil {
		return fmt.Errorf("test id is required for editing a test")
	}

	options, err := GetAttributeOptions(r, "all")
	if err != nil {
		return errors.WithMessage(err, ErrorEditingTest)
	}
	if err := options.ValidateTest(test); err != nil {
		return err
	}
	test.Alias = normalizeAlias(test.Alias)

	response, err := r.R().
		SetBody(&test).
		Put(TestsEndpoint)
	if err != nil {
		return errors.WithMessage(err, ErrorEditingTest)
	}

	if response.StatusCode() != http.StatusAccepted {
		return fmt.Errorf("response status code: %d, body: %s", response.StatusCode(), response.String())
	}

	slog.Info("test edited", "uuid", test.ID)
	return nil
}

package registry

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// GetTestInstance retrieves a test instance by its UUID.
func GetTestInstance(r *resty.Client, instanceID uuid.UUID) (*TestInstance, error) {
	return getTestInstance(r, map[string]string{"id": instanceID.String()})
}

// GetTestInstanceByVersion retrieves the instance of a test with the given version.
func GetTestInstanceByVersion(r *resty.Client, testID uuid.UUID, version string) (*TestInstance, error) {
	return getTestInstance(r, map[string]string{"test_definition_id": testID.String(), "version": version})
}

// GetTestInstanceByAlias retrieves the instance of a test with the given
// test alias and version.
func GetTestInstanceByAlias(r *resty.Client, alias, version string) (*TestInstance, error) {
	return getTestInstance(r, map[string]string{"test_alias": alias, "version": version})
}

func getTestInstance(r *resty.Client, params map[string]string) (*TestInstance, error) {
	req := r.R().
		SetQueryParams(params).
		SetResult(&testInstanceEnvelope{})
	response, err := req.Get(TestInstancesEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorGettingTestInstance)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	envelope := response.Result().(*testInstanceEnvelope)
	if envelope == nil || len(envelope.TestCodes) != 1 {
		return nil, fmt.Errorf("expected exactly one test instance in response")
	}

	instance := envelope.TestCodes[0]
	if instance.IsNil() {
		return nil, fmt.Errorf("error unmarshalling test instance")
	}
	slog.Debug("test instance", "instance", instance)
	return &instance, nil
}

// ListTestInstances retrieves all instances of the test with the given UUID.
func ListTestInstances(r *resty.Client, testID uuid.UUID) ([]TestInstance, error) {
	return listTestInstances(r, map[string]string{"test_definition_id": testID.String()})
}

// ListTestInstancesByAlias retrieves all instances of the test with the given alias.
func ListTestInstancesByAlias(r *resty.Client, alias string) ([]TestInstance, error) {
	return listTestInstances(r, map[string]string{"test_alias": alias})
}

func listTestInstances(r *resty.Client, params map[string]string) ([]TestInstance, error) {
	req := r.R().
		SetQueryParams(params).
		SetResult(&testInstanceEnvelope{})
	response, err := req.Get(TestInstancesEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorListingTestInstances)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	envelope := response.Result().(*testInstanceEnvelope)
	if envelope == nil {
		return nil, fmt.Errorf("error unmarshalling test instances")
	}
	slog.Debug("test instances", "count", len(envelope.TestCodes))
	return envelope.TestCodes, nil
}

// AddTestInstance registers a new instance of an existing test.
// The TestDefinitionID of the instance must be set.
func AddTestInstance(r *resty.Client, instance TestInstance) (uuid.UUID, error) {
	if instance.TestDefinitionID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("test definition id is required for adding a test instance")
	}

	req := r.R().
		SetBody([]TestInstance{instance}).
		SetResult(&createdListResponse{})
	response, err := req.Post(TestInstancesEndpoint)
	if err != nil {
		return uuid.Nil, errors.WithMessage(err, ErrorAddingTestInstance)
	}

	if response.StatusCode() != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("response status code: %d, body: %s", response.StatusCode(), response.String())
	}

	created := response.Result().(*createdListResponse)
	if created == nil || len(created.UUID) != 1 {
		return uuid.Nil, fmt.Errorf("no uuid returned for created test instance")
	}
	slog.Info("test instance added", "uuid", created.UUID[0])
	return created.UUID[0], nil
}

// EditTestInstance updates an existing test instance. The instance can be
// identified by its own ID, or by TestDefinitionID plus Version.
func EditTestInstance(r *resty.Client, instance TestInstance) error {
	if instance.ID == uuid.Nil && (instance.TestDefinitionID == uuid.Nil || instance.Version == "") {
		return fmt.Errorf("instance id or (test definition id, version) is required for editing a test instance")
	}

	response, err := r.R().
		SetBody([]TestInstance{instance}).
		Put(TestInstancesEndpoint)
	if err != nil {
		return errors.WithMessage(err, ErrorEditingTestInstance)
	}

	if response.StatusCode() != http.StatusAccepted {
		return fmt.Errorf("response status code: %d, body: %s", response.StatusCode(), response.String())
	}

	slog.Info("test instance edited", "uuid", instance.ID)
	return nil
}

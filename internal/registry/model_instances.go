package registry

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// GetModelInstance retrieves a model instance by its UUID.
func GetModelInstance(r *resty.Client, instanceID uuid.UUID) (*ModelInstance, error) {
	return getModelInstance(r, map[string]string{"id": instanceID.String()})
}

// GetModelInstanceByVersion retrieves the instance of a model with the given version.
func GetModelInstanceByVersion(r *resty.Client, modelID uuid.UUID, version string) (*ModelInstance, error) {
	return getModelInstance(r, map[string]string{"model_id": modelID.String(), "version": version})
}

// GetModelInstanceByAlias retrieves the instance of a model with the given
// model alias and version.
func GetModelInstanceByAlias(r *resty.Client, alias, version string) (*ModelInstance, error) {
	return getModelInstance(r, map[string]string{"model_alias": alias, "version": version})
}

func getModelInstance(r *resty.Client, params map[string]string) (*ModelInstance, error) {
	req := r.R().
		SetQueryParams(params).
		SetResult(&modelInstanceEnvelope{})
	response, err := req.Get(ModelInstancesEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorGettingModelInstance)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	envelope := response.Result().(*modelInstanceEnvelope)
	if envelope == nil || len(envelope.Instances) != 1 {
		return nil, fmt.Errorf("expected exactly one model instance in response")
	}

	instance := envelope.Instances[0]
	if instance.IsNil() {
		return nil, fmt.Errorf("error unmarshalling model instance")
	}
	slog.Debug("model instance", "instance", instance)
	return &instance, nil
}

// ListModelInstances retrieves all instances of the model with the given UUID.
func ListModelInstances(r *resty.Client, modelID uuid.UUID) ([]ModelInstance, error) {
	return listModelInstances(r, map[string]string{"model_id": modelID.String()})
}

// ListModelInstancesByAlias retrieves all instances of the model with the given alias.
func ListModelInstancesByAlias(r *resty.Client, alias string) ([]ModelInstance, error) {
	return listModelInstances(r, map[string]string{"model_alias": alias})
}

func listModelInstances(r *resty.Client, params map[string]string) ([]ModelInstance, error) {
	req := r.R().
		SetQueryParams(params).
		SetResult(&modelInstanceEnvelope{})
	response, err := req.Get(ModelInstancesEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorListingModelInstances)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	envelope := response.Result().(*modelInstanceEnvelope)
	if envelope == nil {
		return nil, fmt.Errorf("error unmarshalling model instances")
	}
	slog.Debug("model instances", "count", len(envelope.Instances))
	return envelope.Instances, nil
}

// AddModelInstance registers a new instance of an existing model.
// The ModelID of the instance must be set.
func AddModelInstance(r *resty.Client, instance ModelInstance) (uuid.UUID, error) {
	if instance.ModelID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("model id is required for adding a model instance")
	}

	req := r.R().
		SetBody([]ModelInstance{instance}).
		SetResult(&createdListResponse{})
	response, err := req.Post(ModelInstancesEndpoint)
	if err != nil {
		return uuid.Nil, errors.WithMessage(err, ErrorAddingModelInstance)
	}

	if response.StatusCode() != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("response status code: %d, body: %s", response.StatusCode(), response.String())
	}

	created := response.Result().(*createdListResponse)
	if created == nil || len(created.UUID) != 1 {
		return uuid.Nil, fmt.Errorf("no uuid returned for created model instance")
	}
	slog.Info("model instance added", "uuid", created.UUID[0])
	return created.UUID[0], nil
}

// EditModelInstance updates an existing model instance. The instance can be
// identified by its own ID, or by ModelID plus Version.
func EditModelInstance(r *resty.Client, instance ModelInstance) error {
	if instance.ID == uuid.Nil && (instance.ModelID == uuid.Nil || instance.Version == "") {
		return fmt.Errorf("instance id or (model id, version) is required for editing a model instance")
	}

	response, err := r.R().
		SetBody([]ModelInstance{instance}).
		Put(ModelInstancesEndpoint)
	if err != nil {
		return errors.WithMessage(err, ErrorEditingModelInstance)
	}

	if response.StatusCode() != http.StatusAccepted {
		return fmt.Errorf("response status code: %d, body: %s", response.StatusCode(), response.String())
	}

	slog.Info("model instance edited", "uuid", instance.ID)
	return nil
}

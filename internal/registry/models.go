package registry

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// GetModel retrieves a model description from the catalog by UUID.
func GetModel(r *resty.Client, modelID uuid.UUID) (*Model, error) {
	return getModel(r, map[string]string{"id": modelID.String()})
}

// GetModelByAlias retrieves a model description from the catalog by its alias.
func GetModelByAlias(r *resty.Client, alias string) (*Model, error) {
	return getModel(r, map[string]string{"alias": alias})
}

func getModel(r *resty.Client, params map[string]string) (*Model, error) {
	req := r.R().
		SetQueryParams(params).
		SetResult(&modelEnvelope{})
	response, err := req.Get(ModelsEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorGettingModel)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	envelope := response.Result().(*modelEnvelope)
	if envelope == nil || len(envelope.Models) != 1 {
		return nil, fmt.Errorf("expected exactly one model in response")
	}

	model := envelope.Models[0]
	if model.IsNil() {
		return nil, fmt.Errorf("error unmarshalling model")
	}
	slog.Debug("model", "model", model)
	return &model, nil
}

// ListModels retrieves the model descriptions satisfying the given filters.
// Valid filter keys include app_id, name, alias, author, organization,
// species, brain_region, cell_type and model_type.
func ListModels(r *resty.Client, filters map[string]string) ([]Model, error) {
	req := r.R().SetResult(&modelEnvelope{})
	if filters != nil {
		req.SetQueryParams(filters)
	}
	response, err := req.Get(ModelsEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorListingModels)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	envelope := response.Result().(*modelEnvelope)
	if envelope == nil {
		return nil, fmt.Errorf("error unmarshalling models")
	}
	slog.Debug("models", "count", len(envelope.Models))
	return envelope.Models, nil
}

// ModelRegistration bundles a new model description with its initial
// instances and images.
type ModelRegistration struct {
	Model     Model           `json:"model"`
	Instances []ModelInstance `json:"model_instance"`
	Images    []ModelImage    `json:"model_image"`
}

// RegisterModel creates a new model description in the catalog.
// The model attributes are validated against the registry's controlled
// vocabularies before the request is sent.
func RegisterModel(r *resty.Client, appID string, reg ModelRegistration) (uuid.UUID, error) {
	options, err := GetAttributeOptions(r, "all")
	if err != nil {
		return uuid.Nil, errors.WithMessage(err, ErrorRegisteringModel)
	}
	if err := options.ValidateModel(reg.Model); err != nil {
		return uuid.Nil, err
	}
	reg.Model.Alias = normalizeAlias(reg.Model.Alias)

	req := r.R().
		SetQueryParam("app_id", appID).
		SetBody(&reg).
		SetResult(&createdResponse{})
	response, err := req.Post(ModelsEndpoint)
	if err != nil {
		return uuid.Nil, errors.WithMessage(err, ErrorRegisteringModel)
	}

	if response.StatusCode() != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("response status code: %d, body: %s", response.StatusCode(), response.String())
	}

	created := response.Result().(*createdResponse)
	if created == nil || created.UUID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("no uuid returned for created model")
	}
	slog.Info("model registered", "uuid", created.UUID)
	return created.UUID, nil
}

type editModelRequest struct {
	Models []Model `json:"models"`
}

// EditModel updates an existing model description. The model ID must be set.
func EditModel(r *resty.Client, appID string, model Model) error {
	if model.ID == uuid.Nil {
		return fmt.Errorf("model id is required for editing a model")
	}

	options, err := GetAttributeOptions(r, "all")
	if err != nil {
		return errors.WithMessage(err, ErrorEditingModel)
	}
	if err := options.ValidateModel(model); err != nil {
		return err
	}
	model.Alias = normalizeAlias(model.Alias)

	req := r.R().
		SetQueryParam("app_id", appID).
		SetBody(&editModelRequest{Models: []Model{model}})
	response, err := req.Put(ModelsEndpoint)
	if err != nil {
		return errors.WithMessage(err, ErrorEditingModel)
	}

	if response.StatusCode() != http.StatusAccepted {
		return fmt.Errorf("response status code: %d, body: %s", response.StatusCode(), response.String())
	}

	slog.Info("model edited", "uuid", model.ID)
	return nil
}

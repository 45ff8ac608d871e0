package registry

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// GetModelImage retrieves the metadata of a figure attached to a model description.
func GetModelImage(r *resty.Client, imageID uuid.UUID) (*ModelImage, error) {
	req := r.R().
		SetQueryParam("id", imageID.String()).
		SetResult(&modelImageEnvelope{})
	response, err := req.Get(ModelImagesEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorGettingModelImage)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	envelope := response.Result().(*modelImageEnvelope)
	if envelope == nil || len(envelope.Images) != 1 {
		return nil, fmt.Errorf("expected exactly one model image in response")
	}

	image := envelope.Images[0]
	if image.IsNil() {
		return nil, fmt.Errorf("error unmarshalling model image")
	}
	slog.Debug("model image", "image", image)
	return &image, nil
}

// ListModelImages retrieves all figures attached to the model with the given UUID.
func ListModelImages(r *resty.Client, modelID uuid.UUID) ([]ModelImage, error) {
	return listModelImages(r, map[string]string{"model_id": modelID.String()})
}

// ListModelImagesByAlias retrieves all figures attached to the model with the given alias.
func ListModelImagesByAlias(r *resty.Client, alias string) ([]ModelImage, error) {
	return listModelImages(r, map[string]string{"model_alias": alias})
}

func listModelImages(r *resty.Client, params map[string]string) ([]ModelImage, error) {
	req := r.R().
		SetQueryParams(params).
		SetResult(&modelImageEnvelope{})
	response, err := req.Get(ModelImagesEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorListingModelImages)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	envelope := response.Result().(*modelImageEnvelope)
	if envelope == nil {
		return nil, fmt.Errorf("error unmarshalling model images")
	}
	slog.Debug("model images", "count", len(envelope.Images))
	return envelope.Images, nil
}

// AddModelImage attaches a new figure to an existing model description.
// The ModelID of the image must be set.
func AddModelImage(r *resty.Client, image ModelImage) (uuid.UUID, error) {
	if image.ModelID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("model id is required for adding a model image")
	}

	req := r.R().
		SetBody([]ModelImage{image}).
		SetResult(&createdListResponse{})
	response, err := req.Post(ModelImagesEndpoint)
	if err != nil {
		return uuid.Nil, errors.WithMessage(err, ErrorAddingModelImage)
	}

	if response.StatusCode() != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("response status code: %d, body: %s", response.StatusCode(), response.String())
	}

	created := response.Result().(*createdListResponse)
	if created == nil || len(created.UUID) != 1 {
		return uuid.Nil, fmt.Errorf("no uuid returned for created model image")
	}
	slog.Info("model image added", "uuid", created.UUID[0])
	return created.UUID[0], nil
}

// EditModelImage updates the metadata of an existing figure.
func EditModelImage(r *resty.Client, image ModelImage) error {
	if image.ID == uuid.Nil {
		return fmt.Errorf("image id is required for editing a model image")
	}

	response, err := r.R().
		SetQueryParam("id", image.ID.String()).
		SetBody([]ModelImage{image}).
		Put(ModelImagesEndpoint)
	if err != nil {
		return errors.WithMessage(err, ErrorEditingModelImage)
	}

	if response.StatusCode() != http.StatusAccepted {
		return fmt.Errorf("response status code: %d, body: %s", response.StatusCode(), response.String())
	}

	slog.Info("model image edited", "uuid", image.ID)
	return nil
}

package registry

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var validAttributeParams = []string{
	"cell_type", "test_type", "score_type", "brain_region",
	"model_type", "data_modalities", "species", "organization", "all",
}

// GetAttributeOptions retrieves the valid values for the controlled record
// attributes. An empty param returns the values for all attributes.
func GetAttributeOptions(r *resty.Client, param string) (*AttributeOptions, error) {
	if param == "" {
		param = "all"
	}
	if !slices.Contains(validAttributeParams, param) {
		return nil, fmt.Errorf("attribute has to be one of: %v", validAttributeParams)
	}

	req := r.R().
		SetQueryParam("python_client", "true").
		SetQueryParam("parameters", param).
		SetResult(&AttributeOptions{})
	response, err := req.Get(AttributeOptionsEndpoint)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorGettingAttributeOptions)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("response status code: %d", response.StatusCode())
	}

	options := response.Result().(*AttributeOptions)
	if options == nil {
		return nil, fmt.Errorf("error unmarshalling attribute options")
	}
	return options, nil
}

// ValidateModel checks the controlled attributes of a model description
// against the registry's vocabularies. All violations are reported together.
func (o *AttributeOptions) ValidateModel(m Model) error {
	var result *multierror.Error
	result = multierror.Append(result, checkAttribute("cell_type", m.CellType, o.CellType))
	result = multierror.Append(result, checkAttribute("model_type", m.ModelType, o.ModelType))
	result = multierror.Append(result, checkAttribute("brain_region", m.BrainRegion, o.BrainRegion))
	result = multierror.Append(result, checkAttribute("species", m.Species, o.Species))
	if m.Organization != "" {
		result = multierror.Append(result, checkAttribute("organization", m.Organization, o.Organization))
	}
	return result.ErrorOrNil()
}

// ValidateTest checks the controlled attributes of a test definition
// against the registry's vocabularies. All violations are reported together.
func (o *AttributeOptions) ValidateTest(t Test) error {
	var result *multierror.Error
	result = multierror.Append(result, checkAttribute("species", t.Species, o.Species))
	result = multierror.Append(result, checkAttribute("brain_region", t.BrainRegion, o.BrainRegion))
	result = multierror.Append(result, checkAttribute("cell_type", t.CellType, o.CellType))
	result = multierror.Append(result, checkAttribute("data_modality", t.DataModality, o.DataModalities))
	result = multierror.Append(result, checkAttribute("test_type", t.TestType, o.TestType))
	result = multierror.Append(result, checkAttribute("score_type", t.ScoreType, o.ScoreType))
	return result.ErrorOrNil()
}

func checkAttribute(name, value string, valid []string) error {
	if slices.Contains(valid, value) {
		return nil
	}
	return fmt.Errorf("%s = %q is invalid, value has to be one of: %v", name, value, valid)
}

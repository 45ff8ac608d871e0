// Package report renders an HTML summary of test results retrieved from the
// validation registry. For every result the related model, model instance,
// test and test instance records are fetched; the five collections stay
// positionally aligned, so index i of each slice describes result i.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/apdavison/hbp-validation-client/internal/registry"
)

//go:embed template.html
var templateFS embed.FS

// Data holds the positionally aligned record collections joined into the report.
type Data struct {
	RegistryURL    string
	GeneratedOn    time.Time
	Results        []registry.Result
	Models         []registry.Model
	ModelInstances []registry.ModelInstance
	Tests          []registry.Test
	TestInstances  []registry.TestInstance
}

// Fetch retrieves the records for the given result UUIDs. Results that
// cannot be resolved, or whose related records are missing, are skipped with
// a warning. The returned UUIDs identify the results that made it into the
// report, in input order.
func Fetch(r *resty.Client, resultIDs []uuid.UUID) (*Data, []uuid.UUID, error) {
	n := len(resultIDs)
	data := &Data{
		RegistryURL:    r.BaseURL,
		GeneratedOn:    time.Now(),
		Results:        make([]registry.Result, n),
		Models:         make([]registry.Model, n),
		ModelInstances: make([]registry.ModelInstance, n),
		Tests:          make([]registry.Test, n),
		TestInstances:  make([]registry.TestInstance, n),
	}
	valid := make([]bool, n)

	var g errgroup.Group
	for i, resultID := range resultIDs {
		i, resultID := i, resultID
		g.Go(func() error {
			result, err := registry.GetResult(r, resultID)
			if err != nil {
				slog.Warn("skipping result, unable to retrieve", "uuid", resultID, "error", err)
				return nil
			}

			modelInstance, err := registry.GetModelInstance(r, result.ModelVersionID)
			if err != nil {
				slog.Warn("skipping result, unable to retrieve model instance", "uuid", resultID, "error", err)
				return nil
			}

			model, err := registry.GetModel(r, modelInstance.ModelID)
			if err != nil {
				slog.Warn("skipping result, unable to retrieve model", "uuid", resultID, "error", err)
				return nil
			}

			testInstance, err := registry.GetTestInstance(r, result.TestCodeID)
			if err != nil {
				slog.Warn("skipping result, unable to retrieve test instance", "uuid", resultID, "error", err)
				return nil
			}

			test, err := registry.GetTest(r, testInstance.TestDefinitionID)
			if err != nil {
				slog.Warn("skipping result, unable to retrieve test", "uuid", resultID, "error", err)
				return nil
			}

			data.Results[i] = *result
			data.ModelInstances[i] = *modelInstance
			data.Models[i] = *model
			data.TestInstances[i] = *testInstance
			data.Tests[i] = *test
			valid[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, errors.WithMessage(err, "error fetching report data")
	}

	// compact the collections, keeping only the resolved results aligned
	validIDs := make([]uuid.UUID, 0, n)
	kept := 0
	for i := range resultIDs {
		if !valid[i] {
			continue
		}
		data.Results[kept] = data.Results[i]
		data.Models[kept] = data.Models[i]
		data.ModelInstances[kept] = data.ModelInstances[i]
		data.Tests[kept] = data.Tests[i]
		data.TestInstances[kept] = data.TestInstances[i]
		validIDs = append(validIDs, resultIDs[i])
		kept++
	}
	data.Results = data.Results[:kept]
	data.Models = data.Models[:kept]
	data.ModelInstances = data.ModelInstances[:kept]
	data.Tests = data.Tests[:kept]
	data.TestInstances = data.TestInstances[:kept]

	return data, validIDs, nil
}

var templateFuncs = template.FuncMap{
	"derefBool": func(b *bool) bool { return b != nil && *b },
	"derefString": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// Render writes the HTML report for the given data.
func Render(w io.Writer, data *Data) error {
	tmpl, err := template.New("template.html").Funcs(templateFuncs).ParseFS(templateFS, "template.html")
	if err != nil {
		return errors.WithMessage(err, "error parsing report template")
	}
	return tmpl.Execute(w, data)
}

// Generate fetches the records for the given result UUIDs and renders the
// report to outputPath. An empty outputPath produces a timestamped file in
// the working directory. It returns the UUIDs included in the report and the
// path of the written file.
func Generate(r *resty.Client, resultIDs []uuid.UUID, outputPath string) ([]uuid.UUID, string, error) {
	data, validIDs, err := Fetch(r, resultIDs)
	if err != nil {
		return nil, "", err
	}
	if len(validIDs) == 0 {
		return nil, "", fmt.Errorf("no valid results to report")
	}

	if outputPath == "" {
		outputPath = fmt.Sprintf("validation_report_%s.html", data.GeneratedOn.Format("20060102_150405"))
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return nil, "", errors.WithMessage(err, "error creating report file")
	}
	defer file.Close()

	if err := Render(file, data); err != nil {
		return nil, "", err
	}

	slog.Info("report generated", "path", outputPath, "results", len(validIDs))
	return validIDs, outputPath, nil
}

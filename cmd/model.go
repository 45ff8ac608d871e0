package cmd

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apdavison/hbp-validation-client/internal/registry"
)

// modelCmd groups the model catalog verbs
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Work with model records in the catalog",
}

var modelGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Retrieve a single model by UUID or alias",
	RunE:  ModelGetCmdRunE,
}

func ModelGetCmdRunE(cmd *cobra.Command, args []string) error {
	config := LoadConfigFromCLI("model-uuid", "model-alias")
	slog.Debug("args", "config", config)
	if err := config.Validate(); err != nil {
		return err
	}

	r := CreateRestClient(cmd.Context(), config.Url)
	if err := AuthenticateRestClient(r, config.Username, config.Password); err != nil {
		return err
	}

	model, err := getModel(r, config.UUID, config.Alias)
	if err != nil {
		return err
	}

	return printRecord(cmd, model)
}

var modelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List models matching the given filters",
	RunE:  ModelListCmdRunE,
}

func ModelListCmdRunE(cmd *cobra.Command, args []string) error {
	config := LoadConfigFromCLI("", "")
	slog.Debug("args", "config", config)
	if err := config.Validate(); err != nil {
		return err
	}

	filters, err := parseFilters(viper.GetStringSlice("model-filter"))
	if err != nil {
		return err
	}

	r := CreateRestClient(cmd.Context(), config.Url)
	if err := AuthenticateRestClient(r, config.Username, config.Password); err != nil {
		return err
	}

	models, err := registry.ListModels(r, filters)
	if err != nil {
		return err
	}

	slog.Info("models retrieved", "count", len(models))
	return printRecord(cmd, models)
}

var modelRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new model from a JSON description",
	Long: `The register command creates a new model in the catalog.

The JSON file holds a model record, optionally with initial instances and
images. Controlled attributes (species, brain region, cell type, model type)
are validated against the registry vocabularies before submission.`,
	RunE: ModelRegisterCmdRunE,
}

func ModelRegisterCmdRunE(cmd *cobra.Command, args []string) error {
	config := LoadConfigFromCLI("", "")
	slog.Debug("args", "config", config)
	if err := config.Validate(); err != nil {
		return err
	}

	appID := viper.GetString("model-app-id")
	filePath := viper.GetString("model-file")
	if filePath == "" {
		return errors.New("file is required")
	}

	var reg registry.ModelRegistration
	if err := loadJSONFile(filePath, &reg); err != nil {
		return err
	}

	r := CreateRestClient(cmd.Context(), config.Url)
	if err := AuthenticateRestClient(r, config.Username, config.Password); err != nil {
		return err
	}

	modelID, err := registry.RegisterModel(r, appID, reg)
	if err != nil {
		return errors.WithMessage(err, "could not register model")
	}

	slog.Info("model registered", "uuid", modelID)
	cmd.Println(modelID)
	return nil
}

func init() {
	SetupModelGetCmdFlags(modelGetCmd)
	SetupModelListCmdFlags(modelListCmd)
	SetupModelRegisterCmdFlags(modelRegisterCmd)

	modelCmd.AddCommand(modelGetCmd)
	modelCmd.AddCommand(modelListCmd)
	modelCmd.AddCommand(modelRegisterCmd)
	rootCmd.AddCommand(modelCmd)
}

func SetupModelGetCmdFlags(command *cobra.Command) {
	command.Flags().String("uuid", "", "UUID of the model to retrieve")
	if err := viper.BindPFlag("model-uuid", command.Flags().Lookup("uuid")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}

	command.Flags().String("alias", "", "Alias of the model to retrieve")
	if err := viper.BindPFlag("model-alias", command.Flags().Lookup("alias")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}
}

func SetupModelListCmdFlags(command *cobra.Command) {
	command.Flags().StringSlice("filter", nil, "Filter as attribute=value, repeatable")
	if err := viper.BindPFlag("model-filter", command.Flags().Lookup("filter")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}
}

func SetupModelRegisterCmdFlags(command *cobra.Command) {
	command.Flags().String("file", "", "Path to the JSON model description")
	if err := viper.BindPFlag("model-file", command.Flags().Lookup("file")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}

	command.Flags().String("app-id", "", "Collab app ID the model belongs to")
	if err := viper.BindPFlag("model-app-id", command.Flags().Lookup("app-id")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}
}

// getModel retrieves a model by UUID or alias, preferring the UUID
func getModel(r *resty.Client, uuidStr, alias string) (*registry.Model, error) {
	slog.Info("Retrieving model...")
	var err error
	var model *registry.Model
	switch {
	case uuidStr != "":
		model, err = registry.GetModel(r, uuid.MustParse(uuidStr))
	case alias != "":
		model, err = registry.GetModelByAlias(r, alias)
	default:
		return nil, errors.New("either uuid or alias is required")
	}

	if err != nil {
		return nil, errors.WithMessage(err, "could not retrieve model")
	}

	return model, nil
}

// printRecord writes a record to the command output as indented JSON
func printRecord(cmd *cobra.Command, record any) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.WithMessage(err, "could not render record")
	}
	cmd.Println(string(data))
	return nil
}

// loadJSONFile reads a JSON file into the given value
func loadJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithMessagef(err, "could not read %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WithMessagef(err, "could not parse %s", path)
	}
	return nil
}

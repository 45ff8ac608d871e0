package cmd

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apdavison/hbp-validation-client/internal/datastore"
	"github.com/apdavison/hbp-validation-client/internal/registry"
)

// resultCmd groups the validation result verbs
var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Work with validation results",
}

var resultGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Retrieve a single validation result by UUID",
	RunE:  ResultGetCmdRunE,
}

func ResultGetCmdRunE(cmd *cobra.Command, args []string) error {
	config := LoadConfigFromCLI("result-uuid", "")
	slog.Debug("args", "config", config)
	if err := config.Validate(); err != nil {
		return err
	}
	if config.UUID == "" {
		return errors.New("uuid is required")
	}

	r := CreateRestClient(cmd.Context(), config.Url)
	if err := AuthenticateRestClient(r, config.Username, config.Password); err != nil {
		return err
	}

	result, err := registry.GetResult(r, uuid.MustParse(config.UUID))
	if err != nil {
		return errors.WithMessage(err, "could not retrieve result")
	}

	return printRecord(cmd, result)
}

var resultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List validation results matching the given filters",
	Long: `The list command retrieves validation results.

Without --order the results are returned as a flat list. With --order test
or --order model the registry groups the results by test or model and the
grouped document is printed as-is.`,
	RunE: ResultListCmdRunE,
}

func ResultListCmdRunE(cmd *cobra.Command, args []string) error {
	config := LoadConfigFromCLI("", "")
	slog.Debug("args", "config", config)
	if err := config.Validate(); err != nil {
		return err
	}

	order := registry.Order(viper.GetString("result-order"))
	if !order.Valid() {
		return errors.Errorf("invalid order %q, expected test or model", order)
	}

	filters, err := parseFilters(viper.GetStringSlice("result-filter"))
	if err != nil {
		return err
	}

	r := CreateRestClient(cmd.Context(), config.Url)
	if err := AuthenticateRestClient(r, config.Username, config.Password); err != nil {
		return err
	}

	if order != "" {
		grouped, err := registry.ListResultsOrdered(r, order, filters)
		if err != nil {
			return err
		}
		cmd.Println(string(grouped))
		return nil
	}

	results, err := registry.ListResults(r, filters)
	if err != nil {
		return err
	}

	slog.Info("results retrieved", "count", len(results))
	return printRecord(cmd, results)
}

var resultRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a validation result, optionally uploading result data",
	Long: `The register command creates a new validation result.

The JSON file holds the result record; model_version_id and test_code_id are
required. Files given with --data are uploaded to the datastore selected by
--storage before registration, and their locations recorded on the result.`,
	RunE: ResultRegisterCmdRunE,
}

func ResultRegisterCmdRunE(cmd *cobra.Command, args []string) error {
	config := LoadConfigFromCLI("", "")
	slog.Debug("args", "config", config)
	if err := config.Validate(); err != nil {
		return err
	}

	filePath := viper.GetString("result-file")
	if filePath == "" {
		return errors.New("file is required")
	}

	var result registry.Result
	if err := loadJSONFile(filePath, &result); err != nil {
		return err
	}

	r := CreateRestClient(cmd.Context(), config.Url)
	if err := AuthenticateRestClient(r, config.Username, config.Password); err != nil {
		return err
	}

	dataPaths := viper.GetStringSlice("result-data")
	if len(dataPaths) == 0 {
		resultID, err := registry.RegisterResult(r, result)
		if err != nil {
			return errors.WithMessage(err, "could not register result")
		}
		slog.Info("result registered", "uuid", resultID)
		cmd.Println(resultID)
		return nil
	}

	store, err := datastore.ForURI(cmd.Context(), viper.GetString("result-storage"))
	if err != nil {
		return err
	}

	resultID, err := registry.RegisterResultWithData(cmd.Context(), r, result, store, dataPaths)
	if err != nil {
		return errors.WithMessage(err, "could not register result")
	}

	slog.Info("result registered", "uuid", resultID, "files", len(dataPaths))
	cmd.Println(resultID)
	return nil
}

func init() {
	SetupResultGetCmdFlags(resultGetCmd)
	SetupResultListCmdFlags(resultListCmd)
	SetupResultRegisterCmdFlags(resultRegisterCmd)

	resultCmd.AddCommand(resultGetCmd)
	resultCmd.AddCommand(resultListCmd)
	resultCmd.AddCommand(resultRegisterCmd)
	rootCmd.AddCommand(resultCmd)
}

func SetupResultGetCmdFlags(command *cobra.Command) {
	command.Flags().String("uuid", "", "UUID of the result to retrieve")
	if err := viper.BindPFlag("result-uuid", command.Flags().Lookup("uuid")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}
}

func SetupResultListCmdFlags(command *cobra.Command) {
	command.Flags().String("order", "", "Group results by test or model")
	if err := viper.BindPFlag("result-order", command.Flags().Lookup("order")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}

	command.Flags().StringSlice("filter", nil, "Filter as attribute=value, repeatable")
	if err := viper.BindPFlag("result-filter", command.Flags().Lookup("filter")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}
}

func SetupResultRegisterCmdFlags(command *cobra.Command) {
	command.Flags().String("file", "", "Path to the JSON result description")
	if err := viper.BindPFlag("result-file", command.Flags().Lookup("file")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}

	command.Flags().StringSlice("data", nil, "Result data file to upload, repeatable")
	if err := viper.BindPFlag("result-data", command.Flags().Lookup("data")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}

	command.Flags().String("storage", "", "Datastore URI for result data (s3://bucket/prefix or a directory)")
	if err := viper.BindPFlag("result-storage", command.Flags().Lookup("storage")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}
}

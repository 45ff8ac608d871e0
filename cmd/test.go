package cmd

import (
	"log/slog"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apdavison/hbp-validation-client/internal/registry"
)

// testCmd groups the test definition verbs
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Work with test definitions in the library",
}

var testGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Retrieve a single test definition by UUID or alias",
	RunE:  TestGetCmdRunE,
}

func TestGetCmdRunE(cmd *cobra.Command, args []string) error {
	config := LoadConfigFromCLI("test-uuid", "test-alias")
	slog.Debug("args", "config", config)
	if err := config.Validate(); err != nil {
		return err
	}

	r := CreateRestClient(cmd.Context(), config.Url)
	if err := AuthenticateRestClient(r, config.Username, config.Password); err != nil {
		return err
	}

	test, err := getTest(r, config.UUID, config.Alias)
	if err != nil {
		return err
	}

	return printRecord(cmd, test)
}

var testListCmd = &cobra.Command{
	Use:   "list",
	Short: "List test definitions matching the given filters",
	RunE:  TestListCmdRunE,
}

func TestListCmdRunE(cmd *cobra.Command, args []string) error {
	config := LoadConfigFromCLI("", "")
	slog.Debug("args", "config", config)
	if err := config.Validate(); err != nil {
		return err
	}

	filters, err := parseFilters(viper.GetStringSlice("test-filter"))
	if err != nil {
		return err
	}

	r := CreateRestClient(cmd.Context(), config.Url)
	if err := AuthenticateRestClient(r, config.Username, config.Password); err != nil {
		return err
	}

	tests, err := registry.ListTests(r, filters)
	if err != nil {
		return err
	}

	slog.Info("tests retrieved", "count", len(tests))
	return printRecord(cmd, tests)
}

func init() {
	SetupTestGetCmdFlags(testGetCmd)
	SetupTestListCmdFlags(testListCmd)

	testCmd.AddCommand(testGetCmd)
	testCmd.AddCommand(testListCmd)
	rootCmd.AddCommand(testCmd)
}

func SetupTestGetCmdFlags(command *cobra.Command) {
	command.Flags().String("uuid", "", "UUID of the test to retrieve")
	if err := viper.BindPFlag("test-uuid", command.Flags().Lookup("uuid")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}

	command.Flags().String("alias", "", "Alias of the test to retrieve")
	if err := viper.BindPFlag("test-alias", command.Flags().Lookup("alias")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}
}

func SetupTestListCmdFlags(command *cobra.Command) {
	command.Flags().StringSlice("filter", nil, "Filter as attribute=value, repeatable")
	if err := viper.BindPFlag("test-filter", command.Flags().Lookup("filter")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}
}

// getTest retrieves a test definition by UUID or alias, preferring the UUID
func getTest(r *resty.Client, uuidStr, alias string) (*registry.Test, error) {
	slog.Info("Retrieving test...")
	var err error
	var test *registry.Test
	switch {
	case uuidStr != "":
		test, err = registry.GetTest(r, uuid.MustParse(uuidStr))
	case alias != "":
		test, err = registry.GetTestByAlias(r, alias)
	default:
		return nil, errors.New("either uuid or alias is required")
	}

	if err != nil {
		return nil, errors.WithMessage(err, "could not retrieve test")
	}

	return test, nil
}

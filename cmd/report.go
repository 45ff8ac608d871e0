package cmd

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apdavison/hbp-validation-client/internal/report"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an HTML report for one or more validation results",
	Long: `The report command fetches the given results together with their models,
model instances, tests and test instances, and renders them into a single
HTML page. Results that cannot be fully resolved are skipped with a warning.`,
	RunE: ReportCmdRunE,
}

func ReportCmdRunE(cmd *cobra.Command, args []string) error {
	config := LoadConfigFromCLI("", "")
	slog.Debug("args", "config", config)
	if err := config.Validate(); err != nil {
		return err
	}

	resultIDs, err := parseResultIDs(viper.GetStringSlice("report-results"))
	if err != nil {
		return err
	}
	if len(resultIDs) == 0 {
		return errors.New("at least one result UUID is required")
	}

	r := CreateRestClient(cmd.Context(), config.Url)
	if err := AuthenticateRestClient(r, config.Username, config.Password); err != nil {
		return err
	}

	included, outputPath, err := report.Generate(r, resultIDs, viper.GetString("report-out"))
	if err != nil {
		return errors.WithMessage(err, "could not generate report")
	}

	if len(included) < len(resultIDs) {
		slog.Warn("some results were skipped", "requested", len(resultIDs), "included", len(included))
	}
	cmd.Println(outputPath)
	return nil
}

func init() {
	SetupReportCmdFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

func SetupReportCmdFlags(command *cobra.Command) {
	command.Flags().StringSlice("results", nil, "UUID of a result to include, repeatable")
	if err := viper.BindPFlag("report-results", command.Flags().Lookup("results")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}

	command.Flags().String("out", "", "Path of the HTML file to write (default: timestamped name)")
	if err := viper.BindPFlag("report-out", command.Flags().Lookup("out")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}
}

// parseResultIDs parses the --results flag values into UUIDs
func parseResultIDs(values []string) ([]uuid.UUID, error) {
	resultIDs := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		resultID, err := uuid.Parse(value)
		if err != nil {
			return nil, errors.WithMessagef(err, "could not parse UUID %q", value)
		}
		resultIDs = append(resultIDs, resultID)
	}
	return resultIDs, nil
}

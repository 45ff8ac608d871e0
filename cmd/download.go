package cmd

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apdavison/hbp-validation-client/internal/datastore"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download files referenced by a result or test from their datastore",
	Long: `The download command fetches remote files into a local directory.

The datastore is selected from the URI scheme: http(s) URLs are fetched over
the web, s3:// URIs from the object store, and plain paths from the local
filesystem. Existing local files are not replaced unless --overwrite is set.`,
	RunE: DownloadCmdRunE,
}

func DownloadCmdRunE(cmd *cobra.Command, args []string) error {
	uris := viper.GetStringSlice("download-uri")
	if len(uris) == 0 {
		return errors.New("at least one uri is required")
	}
	localDirectory := viper.GetString("download-dir")
	overwrite := viper.GetBool("download-overwrite")

	// all URIs must share a scheme; the first one selects the datastore
	store, err := datastore.ForURI(cmd.Context(), uris[0])
	if err != nil {
		return err
	}

	localPaths, err := store.DownloadData(cmd.Context(), uris, localDirectory, overwrite)
	if err != nil {
		return errors.WithMessage(err, "could not download data")
	}

	slog.Info("download complete", "files", len(localPaths))
	for _, localPath := range localPaths {
		cmd.Println(localPath)
	}
	return nil
}

func init() {
	SetupDownloadCmdFlags(downloadCmd)
	rootCmd.AddCommand(downloadCmd)
}

func SetupDownloadCmdFlags(command *cobra.Command) {
	command.Flags().StringSlice("uri", nil, "Remote file to download, repeatable")
	if err := viper.BindPFlag("download-uri", command.Flags().Lookup("uri")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}

	command.Flags().String("dir", ".", "Local directory to download into")
	if err := viper.BindPFlag("download-dir", command.Flags().Lookup("dir")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}

	command.Flags().Bool("overwrite", false, "Replace existing local files")
	if err := viper.BindPFlag("download-overwrite", command.Flags().Lookup("overwrite")); err != nil {
		slog.Error(ErrorBindingFlag, "error", err)
	}
}

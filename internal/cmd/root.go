package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zfogg/uploadfile/pkg/config"
	uperrors "github.com/zfogg/uploadfile/pkg/errors"
	"github.com/zfogg/uploadfile/pkg/logger"
	"github.com/zfogg/uploadfile/pkg/output"
)

// errUploadFailed is returned after a failed outcome has been printed
var errUploadFailed = errors.New("upload failed")

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "uploadfile",
	Short: "Upload files as multipart/form-data",
	Long: `uploadfile sends a single file to an HTTP endpoint as a
multipart/form-data POST and prints the JSON the server answers with.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}

		logger.Init(verbose)

		if cmd.Flags().Changed("output") {
			if !output.ValidateOutputFormat(outputFmt) {
				return fmt.Errorf("invalid output format %q (use text or json)", outputFmt)
			}
			config.Set("output.format", outputFmt)
		}
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUploadFailed) {
			output.Writer = os.Stderr
			output.PrintError("%s", strings.TrimRight(uperrors.FormatError(err), "\n"))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: <user config dir>/uploadfile/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(versionCmd)
}

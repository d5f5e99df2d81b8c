package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

type Config struct {
	Folder       string
	SettingsPath string
	Write        bool
	Analyze      bool
	Manifest     bool
	Verbose      bool
	Quiet        bool
}

var (
	version = "dev" // set at build time with -ldflags
)

func newRootCmd() *cobra.Command {
	var config Config

	cmd := &cobra.Command{
		Use:   "srt",
		Short: "Rename audio samples to a canonical instrument-based form",
		Long: `srt classifies every sample in a folder against the instrument catalog in
the settings file and renames it to "<prefix> - <keywords> <descriptors> <rest>".

Without --write it only prints what it would do.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(config, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&config.Folder, "folder", "f", "", "folder containing the samples to rename (required)")
	flags.StringVarP(&config.SettingsPath, "settings", "s", "", "settings file with the instrument catalog (default: <Documents>/srt/settings.json)")
	flags.BoolVarP(&config.Write, "write", "w", false, "rename files instead of previewing")
	flags.BoolVar(&config.Analyze, "analyze", false, "read audio metadata and flag likely duplicates")
	flags.BoolVar(&config.Manifest, "manifest", false, "write manifest.json into the folder after renaming")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "log per-file decisions")
	flags.BoolVarP(&config.Quiet, "quiet", "q", false, "only log errors")
	_ = cmd.MarkFlagRequired("folder")

	cmd.SetVersionTemplate("srt version {{.Version}}\n")
	return cmd
}

// run loads the settings and processes one folder. The rename report goes to out.
func run(config Config, out io.Writer) error {
	logger := newLogger(os.Stderr, config.Verbose, config.Quiet)

	info, err := os.Stat(config.Folder)
	if err != nil {
		return errors.Wrap(err, "folder")
	}
	if !info.IsDir() {
		return errors.Newf("%s is not a directory", config.Folder)
	}

	settings, err := LoadSettings(config.SettingsPath)
	if err != nil {
		return err
	}
	logger.Debug("loaded catalog", "instruments", len(settings.Instruments))

	p := NewRenameProcessor(config, settings, logger)
	p.out = out
	return p.Process()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"json-modal/app"
	"json-modal/config"
	"json-modal/highlight"
	"json-modal/log"
	"json-modal/ui/overlay"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "0.1.0"

var (
	fileFlag   string
	themeFlag  string
	formatFlag string
)

var (
	rootCmd = &cobra.Command{
		Use:   "json-modal",
		Short: "json-modal - Show a JSON document in a highlighted modal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize()
			defer log.Close()

			cfg := loadConfig()
			src := app.ResolveSource(fileFlag, cfg.SampleFile, cmd.InOrStdin())

			// Piped output gets the markup instead of a full screen program.
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return printMarkup(ctx, cmd, cfg, src, highlight.FormatTerminal)
			}
			return app.Run(ctx, cfg, src)
		},
	}

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Print the highlighted markup for the input",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := loadConfig()
			name := formatFlag
			if name == "" {
				name = cfg.DefaultFormat
			}
			format, err := highlight.ParseFormat(name)
			if err != nil {
				return err
			}
			src := app.ResolveSource(fileFlag, cfg.SampleFile, cmd.InOrStdin())
			return printMarkup(cmd.Context(), cmd, cfg, src, format)
		},
	}

	copyCmd = &cobra.Command{
		Use:   "copy",
		Short: "Copy the two-space indented JSON to the clipboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := loadConfig()
			src := app.ResolveSource(fileFlag, cfg.SampleFile, cmd.InOrStdin())
			text, err := app.CopyToClipboard(src, overlay.SystemClipboard)
			if err != nil {
				log.ErrorLog.Printf("copy failed: %v", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %d bytes from %s\n", len(text), src.Name())
			return nil
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset-config",
		Short: "Write the default configuration and keybindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Reset(); err != nil {
				return err
			}
			dir, err := config.GetConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration in %s has been reset\n", dir)
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of json-modal",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "json-modal version %s\n", version)
		},
	}
)

// loadConfig reads the config and applies command line overrides.
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}
	return cfg
}

func printMarkup(ctx context.Context, cmd *cobra.Command, cfg *config.Config, src app.Source, format highlight.Format) error {
	if ctx == nil {
		ctx = context.Background()
	}
	markup, err := app.RenderMarkup(ctx, cfg, src, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), markup)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "",
		"JSON file to show; use - to read standard input")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "",
		"Highlight theme, overriding the config file")
	renderCmd.Flags().StringVar(&formatFlag, "format", "",
		"Output format: html or terminal (defaults to the config file)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

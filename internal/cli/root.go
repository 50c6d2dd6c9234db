// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cli implements blogctl, the editorial command line for the clinic
// blog: generating drafts, moving them through review and publishing them
// into the content registry.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pocsclinic/internal/config"
	"pocsclinic/internal/output"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	quiet   bool

	v       *viper.Viper
	cfg     *config.Config
	printer *output.Printer
}

// NewRootCmd builds the blogctl command tree.
func NewRootCmd() *cobra.Command {
	return newApp().command()
}

func newApp() *app {
	return &app{v: viper.New()}
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "blogctl",
		Short: "Editorial tooling for the clinic blog",
		Long: `blogctl manages the clinic blog's drafts and published articles.

Example usage:
  blogctl generate-draft                # Draft a random catalog topic
  blogctl generate-draft fatty          # Draft the topic matching "fatty"
  blogctl generate-draft --from-feed    # Draft from health news via the AI provider
  blogctl publish-draft                 # List drafts
  blogctl publish-draft <file>          # Publish a draft
  blogctl drafts status <id> review     # Move a draft into review`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .blogctl.yaml)")
	flags.String("content-dir", "", `content root holding registry/, blog-posts/ and drafts/ (default "content")`)
	flags.Bool("no-color", false, "disable coloured output")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "only print results")

	_ = a.v.BindPFlag("content.dir", flags.Lookup("content-dir"))
	_ = a.v.BindPFlag("output.no_color", flags.Lookup("no-color"))

	root.AddCommand(
		a.generateCmd(),
		a.publishCmd(),
		a.draftsCmd(),
	)
	return root
}

// init loads the environment configuration and layers .blogctl.yaml,
// BLOGCTL_* variables and flags over it.
func (a *app) init(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if err := config.LoadDotEnv(); err != nil {
		return &output.CLIError{Summary: "loading .env failed", Detail: err.Error(), ExitCode: output.ExitFailure}
	}
	cfg, err := config.Load()
	if err != nil {
		return &output.CLIError{Summary: "invalid configuration", Detail: err.Error(), ExitCode: output.ExitFailure}
	}
	if err := a.readConfigFile(); err != nil {
		return &output.CLIError{
			Summary:    "reading config file failed",
			Detail:     err.Error(),
			Suggestion: "Check the YAML syntax of .blogctl.yaml",
			ExitCode:   output.ExitFailure,
		}
	}

	if dir := a.v.GetString("content.dir"); dir != "" {
		cfg.ContentDir = dir
	}
	if p := a.v.GetString("ai.provider"); p != "" {
		cfg.AIProvider = p
	}
	if feeds := a.v.GetStringSlice("feeds"); len(feeds) > 0 {
		cfg.FeedURLs = feeds
	}
	a.cfg = cfg

	colors := a.v.GetBool("output.colors") && !a.v.GetBool("output.no_color")
	a.printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ResolveColors(colors), a.quiet)

	slog.Debug("configuration loaded",
		"content_dir", cfg.ContentDir,
		"config_file", a.v.ConfigFileUsed(),
		"ai_provider", cfg.AIProvider,
	)
	return nil
}

func (a *app) readConfigFile() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName(".blogctl")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		a.v.AddConfigPath("$HOME/.config/blogctl")
	}

	a.v.SetEnvPrefix("BLOGCTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()
	a.v.SetDefault("output.colors", true)

	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// Execute runs blogctl with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp()
	root := a.command()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return output.ExitSuccess
	}

	printer := a.printer
	if printer == nil {
		printer = output.NewPrinter(stdout, stderr, false, false)
	}
	printer.FormatError(err)
	return output.ExitCode(err)
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sageleaf-labs/canvas-cli/internal/auth"
	"github.com/sageleaf-labs/canvas-cli/internal/config"
	"github.com/sageleaf-labs/canvas-cli/internal/debug"
	"github.com/sageleaf-labs/canvas-cli/internal/iocontext"
	"github.com/sageleaf-labs/canvas-cli/internal/logging"
	"github.com/sageleaf-labs/canvas-cli/internal/output"
	"github.com/sageleaf-labs/canvas-cli/internal/ui"
)

func newRootCmd(app *App) *cobra.Command {
	// Global flags
	var (
		outputFlag   string
		jsonFlag     bool
		queryFlag    string
		jsonPathFlag string
		colorFlag    string
		debugMode    bool
		quietFlag    bool
		limitFlag    int
		noNumberFlag bool
		wideFlag     bool
		compactJSON  bool
		errorFormat  string
		profileFlag  string
	)

	rootCmd := &cobra.Command{
		Use:   "cnv",
		Short: "CLI for the Canvas LMS API",
		Long: `A command-line interface for the Canvas learning management system.

Browse courses, assignments, grades, and files from the terminal.
List output renders as an adaptive table that follows the terminal
width; machine formats (json, ndjson, yaml) are available everywhere.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Cobra's own error/usage text is suppressed; error output is
			// handled centrally in App.Execute.
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			logging.Setup(debugMode, app.Stderr)

			// Load config file (skip for config commands to avoid recursion)
			var cfg *config.Config
			if !isConfigCommand(cmd) {
				loadedCfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				cfg = loadedCfg
			} else {
				cfg = &config.Config{}
			}

			ctx := iocontext.WithIO(cmd.Context(), app.Stdout, app.Stderr)
			ctx = WithConfig(ctx, cfg)
			ctx = WithProfile(ctx, profileFlag)
			ctx = WithBaseURL(ctx, resolveBaseURL(ctx, cfg))
			ctx = debug.WithDebug(ctx, debugMode)

			// Flags win over config defaults.
			rawFormat := outputFlag
			if jsonFlag {
				rawFormat = "json"
			} else if !cmd.Flags().Changed("output") && configOutput(ctx, cfg) != "" {
				rawFormat = configOutput(ctx, cfg)
			}
			format, err := output.ParseFormat(rawFormat)
			if err != nil {
				return err
			}
			ctx = output.WithFormat(ctx, format)

			if err := validateErrorFormat(errorFormat); err != nil {
				return err
			}
			ctx = WithErrorFormat(ctx, errorFormat)

			colorMode := colorFlag
			if !cmd.Flags().Changed("color") && cfg.Color != "" {
				colorMode = cfg.Color
			}
			ctx = ui.WithUI(ctx, ui.New(ui.ParseColorMode(colorMode)))

			query, queryNormalized := output.NormalizeQuery(queryFlag)
			ctx = output.WithQuery(ctx, query)
			ctx = output.WithJSONPath(ctx, jsonPathFlag)
			ctx = output.WithQuiet(ctx, quietFlag)
			ctx = output.WithLimit(ctx, limitFlag)
			ctx = output.WithNoNumbers(ctx, noNumberFlag)
			ctx = output.WithWide(ctx, wideFlag)
			ctx = output.WithCompactJSON(ctx, compactJSON)

			if queryNormalized && !quietFlag {
				ui.FromContext(ctx).Warning("Normalized --query by removing \\! (shell escape); use ! without backslash.")
			}

			cmd.SetContext(ctx)

			// Check token age and warn if old (skip for auth and config commands)
			skipCommands := map[string]bool{"auth": true, "config": true}
			if !skipCommands[cmd.Name()] && (cmd.Parent() == nil || !skipCommands[cmd.Parent().Name()]) {
				checkTokenAgeAndWarn(ctx, quietFlag)
			}

			return nil
		},
	}

	rootCmd.Version = app.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("cnv %s (commit: %s, built: %s)\n", app.Version, app.Commit, app.BuildTime))

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "text", "Output format: text|json|ndjson|yaml|table")
	rootCmd.PersistentFlags().BoolVarP(&jsonFlag, "json", "j", false, "Shorthand for --output json")
	_ = rootCmd.PersistentFlags().MarkHidden("json")
	rootCmd.PersistentFlags().StringVarP(&queryFlag, "query", "q", "", "JQ expression to filter JSON output")
	rootCmd.PersistentFlags().StringVar(&jsonPathFlag, "jsonpath", "", "Extract a value using JSONPath (e.g. $[0].id)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "Color output: auto|always|never")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output (shows HTTP requests/responses)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress non-essential output; lists print IDs only")
	rootCmd.PersistentFlags().IntVar(&limitFlag, "limit", 0, "Limit number of results (0 = no limit)")
	rootCmd.PersistentFlags().BoolVar(&noNumberFlag, "no-number", false, "Hide the row-number column in tables")
	rootCmd.PersistentFlags().BoolVar(&wideFlag, "wide", false, "Never truncate table cells (may exceed terminal width)")
	rootCmd.PersistentFlags().BoolVar(&compactJSON, "compact-json", false, "Output compact JSON (single-line) instead of pretty JSON")
	_ = rootCmd.PersistentFlags().MarkHidden("compact-json")
	rootCmd.PersistentFlags().StringVar(&errorFormat, "error-format", "auto", "Error output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "Config profile to use (overrides default profile)")

	flagAlias(rootCmd.PersistentFlags(), "output", "out")
	flagAlias(rootCmd.PersistentFlags(), "no-number", "nn")

	// Register subcommands
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCoursesCmd())
	rootCmd.AddCommand(newAssignmentsCmd())
	rootCmd.AddCommand(newGradesCmd())
	rootCmd.AddCommand(newFilesCmd())
	rootCmd.AddCommand(newMeCmd())

	return rootCmd
}

// isConfigCommand reports whether cmd is `cnv config` or one of its
// subcommands.
func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

// configOutput returns the default output format from the selected
// profile or the top-level config.
func configOutput(ctx context.Context, cfg *config.Config) string {
	if profile := selectedProfile(ctx, cfg); profile != nil && profile.Output != "" {
		return profile.Output
	}
	if cfg != nil {
		return cfg.Output
	}
	return ""
}

// checkTokenAgeAndWarn checks if the token is older than the rotation threshold
// and prints a warning to stderr if it is. This is non-blocking.
func checkTokenAgeAndWarn(ctx context.Context, quiet bool) {
	if quiet {
		return
	}
	// Only check for keyring tokens (not env var tokens)
	if os.Getenv(auth.EnvVarName) != "" {
		return
	}

	metadata, err := auth.GetTokenMetadata()
	if err != nil || metadata == nil {
		return
	}

	if auth.IsTokenExpiringSoon(metadata.CreatedAt) {
		age := auth.TokenAgeDays(metadata.CreatedAt)
		_, _ = fmt.Fprintf(stderrFromContext(ctx), "Warning: Your Canvas token is %d days old. Consider rotating it.\n", age)
	}
}

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sageleaf-labs/canvas-cli/internal/config"
	"github.com/sageleaf-labs/canvas-cli/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Manage CLI configuration",
		Long:    `Manage canvas-cli configuration file at ~/.config/canvas-cli/config.yaml`,
	}
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Display configuration values",
		Long: `Display the current configuration, or a single key.

Example:
  cnv config get
  cnv config get base_url`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if len(args) == 1 {
				value, err := configValue(cfg, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, value)
				return nil
			}

			// Marshal to YAML for display
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to format config: %w", err)
			}

			// If config is empty, show a helpful message
			if len(data) == 0 || string(data) == "{}\n" {
				path, _ := config.DefaultConfigPath()
				_, _ = fmt.Fprintf(out, "No configuration file found at %s\n", path)
				_, _ = fmt.Fprintln(out, "\nTo create a config file, use:")
				_, _ = fmt.Fprintln(out, "  cnv config set base_url https://canvas.example.edu")
				return nil
			}

			_, _ = fmt.Fprint(out, string(data))
			return nil
		},
	}
}

func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "base_url":
		return cfg.BaseURL, nil
	case "output":
		return cfg.Output, nil
	case "color":
		return cfg.Color, nil
	case "default_course":
		if cfg.DefaultCourse == 0 {
			return "", nil
		}
		return strconv.FormatInt(cfg.DefaultCourse, 10), nil
	case "default_profile":
		return cfg.DefaultProfile, nil
	default:
		return "", fmt.Errorf("unknown config key %q\n\nSupported keys: base_url, output, color, default_course, default_profile", key)
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in ~/.config/canvas-cli/config.yaml

Supported keys:
  base_url        - Canvas instance URL (https://canvas.example.edu)
  output          - Default output format (text, json, ndjson, table, yaml)
  color           - Default color mode (auto, always, never)
  default_course  - Course ID used when a command is run without a course
  default_profile - Default profile name

Examples:
  cnv config set base_url https://canvas.example.edu
  cnv config set output json
  cnv config set default_course 101`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			key := args[0]
			value := args[1]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			switch key {
			case "base_url":
				trimmed := strings.TrimRight(strings.TrimSpace(value), "/")
				if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
					return fmt.Errorf("invalid base_url %q, expected an http(s) URL", value)
				}
				cfg.BaseURL = trimmed
				value = trimmed
			case "output":
				format, err := output.ParseFormat(value)
				if err != nil {
					return fmt.Errorf("invalid output format %q, must be one of: text, json, ndjson, table, yaml", value)
				}
				cfg.Output = string(format)
				value = cfg.Output
			case "color":
				switch value {
				case "auto", "always", "never":
					cfg.Color = value
				default:
					return fmt.Errorf("invalid color mode %q, must be one of: auto, always, never", value)
				}
			case "default_course":
				id, err := strconv.ParseInt(value, 10, 64)
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid default_course %q, expected a positive course ID", value)
				}
				cfg.DefaultCourse = id
			case "default_profile":
				if err := cfg.SetDefaultProfile(value); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown config key %q\n\nSupported keys: base_url, output, color, default_course, default_profile", key)
			}

			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			path, _ := config.DefaultConfigPath()
			_, _ = fmt.Fprintf(out, "Set %s = %s in %s\n", key, value, path)
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Long:  `Display the path to the configuration file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			path, err := config.DefaultConfigPath()
			if err != nil {
				return fmt.Errorf("failed to determine config path: %w", err)
			}

			_, _ = fmt.Fprintln(out, path)

			// Show if file exists
			if _, err := os.Stat(path); err == nil {
				_, _ = fmt.Fprintln(out, "(file exists)")
			} else if os.IsNotExist(err) {
				_, _ = fmt.Fprintln(out, "(file does not exist)")
			}

			return nil
		},
	}
}

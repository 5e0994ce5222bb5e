package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sageleaf-labs/canvas-cli/internal/auth"
	"github.com/sageleaf-labs/canvas-cli/internal/canvas"
	"github.com/sageleaf-labs/canvas-cli/internal/config"
	"github.com/sageleaf-labs/canvas-cli/internal/debug"
	clierrors "github.com/sageleaf-labs/canvas-cli/internal/errors"
)

// BaseURLEnvVar overrides the Canvas instance URL, taking precedence
// over config and profiles. Useful for tests and proxies.
const BaseURLEnvVar = "CANVAS_BASE_URL"

func clientFromContext(ctx context.Context) (*canvas.Client, error) {
	baseURL := BaseURLFromContext(ctx)
	if baseURL == "" {
		return nil, clierrors.NewUserError(
			"no Canvas instance URL configured",
			"Run 'cnv auth login', set base_url with 'cnv config set base_url <url>', or export "+BaseURLEnvVar,
		)
	}

	token, err := tokenFromContext(ctx)
	if err != nil {
		return nil, clierrors.AuthRequiredError(err)
	}

	client := canvas.NewClient(baseURL, token)
	if debug.IsDebug(ctx) {
		client.WithDebugOutput(stderrFromContext(ctx))
	}
	return client, nil
}

// tokenFromContext resolves the API token. A selected profile's
// token_source wins; otherwise the default lookup applies (env var,
// then keyring).
func tokenFromContext(ctx context.Context) (string, error) {
	cfg := ConfigFromContext(ctx)
	if profile := selectedProfile(ctx, cfg); profile != nil && profile.TokenSource != "" {
		return tokenFromSource(profile.TokenSource)
	}
	return auth.GetToken()
}

func tokenFromSource(source string) (string, error) {
	switch {
	case source == "keyring":
		return auth.GetToken()
	case strings.HasPrefix(source, "env:"):
		name := strings.TrimPrefix(source, "env:")
		token := strings.TrimSpace(os.Getenv(name))
		if token == "" {
			return "", fmt.Errorf("environment variable %s is empty", name)
		}
		return token, nil
	default:
		// Direct token value in the config file.
		return source, nil
	}
}

// resolveBaseURL picks the Canvas instance URL: env var, then the
// selected profile, then the top-level config value.
func resolveBaseURL(ctx context.Context, cfg *config.Config) string {
	if v := strings.TrimSpace(os.Getenv(BaseURLEnvVar)); v != "" {
		return v
	}
	if cfg == nil {
		return ""
	}
	if profile := selectedProfile(ctx, cfg); profile != nil && profile.BaseURL != "" {
		return profile.BaseURL
	}
	return cfg.BaseURL
}

func selectedProfile(ctx context.Context, cfg *config.Config) *config.ProfileConfig {
	if cfg == nil {
		return nil
	}
	if name := ProfileFromContext(ctx); name != "" {
		p, err := cfg.GetProfile(name)
		if err != nil {
			return nil
		}
		return p
	}
	p, err := cfg.GetDefaultProfile()
	if err != nil {
		return nil
	}
	return p
}

package cmd

import (
	"context"

	"github.com/sageleaf-labs/canvas-cli/internal/config"
)

type (
	errorFormatKey struct{}
	configKey      struct{}
	profileKey     struct{}
	baseURLKey     struct{}
)

// WithErrorFormat stores the error format in the context.
func WithErrorFormat(ctx context.Context, format string) context.Context {
	return context.WithValue(ctx, errorFormatKey{}, format)
}

// ErrorFormatFromContext retrieves the error format from context.
func ErrorFormatFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(errorFormatKey{}).(string); ok {
		return v
	}
	return ""
}

// WithConfig stores loaded CLI config in context for downstream helpers.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext retrieves CLI config from context.
func ConfigFromContext(ctx context.Context) *config.Config {
	if v, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return v
	}
	return nil
}

// WithProfile stores the selected profile name in the context.
func WithProfile(ctx context.Context, profile string) context.Context {
	return context.WithValue(ctx, profileKey{}, profile)
}

// ProfileFromContext retrieves the selected profile name from the context.
func ProfileFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(profileKey{}).(string); ok {
		return v
	}
	return ""
}

// WithBaseURL stores the resolved Canvas base URL in the context.
func WithBaseURL(ctx context.Context, baseURL string) context.Context {
	return context.WithValue(ctx, baseURLKey{}, baseURL)
}

// BaseURLFromContext retrieves the resolved Canvas base URL.
func BaseURLFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(baseURLKey{}).(string); ok {
		return v
	}
	return ""
}

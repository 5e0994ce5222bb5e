package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sageleaf-labs/canvas-cli/internal/auth"
	"github.com/sageleaf-labs/canvas-cli/internal/canvas"
	"github.com/sageleaf-labs/canvas-cli/internal/cmdutil"
	clierrors "github.com/sageleaf-labs/canvas-cli/internal/errors"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage Canvas API authentication",
		Long:  `Manage access tokens for the Canvas API. Tokens are securely stored in the system keyring.`,
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthTokenCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLogoutCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var host string
	var tokenFile string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a Canvas access token",
		Long: `Store a Canvas access token in the system keyring.

Generate a token in Canvas under Account > Settings > New Access
Token, then run this command. You will be prompted for the token;
input is hidden. Non-interactive callers can pipe the token on stdin
or pass --token-file.

The token is stored securely using your operating system's keyring:
  - macOS: Keychain
  - Linux: Secret Service (GNOME Keyring, KWallet), with encrypted file fallback
  - Windows: Credential Manager

Example:
  cnv auth login --host https://canvas.example.edu
  echo "$TOKEN" | cnv auth login --host https://canvas.example.edu
  cnv auth login --token-file @token.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			baseURL := strings.TrimRight(strings.TrimSpace(host), "/")
			if baseURL == "" {
				baseURL = BaseURLFromContext(ctx)
			}
			if baseURL == "" {
				return clierrors.NewUserError(
					"no Canvas instance URL given",
					"Pass --host https://canvas.example.edu",
				)
			}

			token, err := readLoginToken(ctx, tokenFile)
			if err != nil {
				return err
			}
			if token == "" {
				return fmt.Errorf("token cannot be empty")
			}

			if err := auth.StoreToken(token, baseURL); err != nil {
				return fmt.Errorf("failed to store token: %w", err)
			}

			// Persist the instance URL so later commands need no --host.
			if cfg := ConfigFromContext(ctx); cfg != nil && cfg.BaseURL != baseURL {
				cfg.BaseURL = baseURL
				if err := cfg.Save(); err != nil {
					_, _ = fmt.Fprintf(stderrFromContext(ctx), "Warning: could not save config: %v\n", err)
				}
			}

			// Verify the token and remember who we are. Best effort; the
			// token is already stored.
			client := canvas.NewClient(baseURL, token)
			user, err := client.GetSelf(ctx)
			if err != nil {
				_, _ = fmt.Fprintf(stderrFromContext(ctx), "Warning: token stored but verification failed: %v\n", err)
				return nil
			}
			_ = auth.StoreUserInfo(&auth.UserInfo{
				ID:      user.ID,
				Name:    user.Name,
				LoginID: user.LoginID,
				Email:   user.Email,
				BaseURL: baseURL,
			})

			printer := printerForContext(ctx)
			return printer.Print(ctx, map[string]interface{}{
				"status":  "success",
				"message": "Token stored successfully in keyring",
				"user": map[string]interface{}{
					"id":   user.ID,
					"name": user.Name,
				},
			})
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Canvas instance URL, e.g. https://canvas.example.edu")
	cmd.Flags().StringVar(&tokenFile, "token-file", "", "Read the token from a file ('-' for stdin)")

	return cmd
}

// readLoginToken obtains the token: from --token-file, from a stdin
// pipe, or interactively with hidden input.
func readLoginToken(ctx context.Context, tokenFile string) (string, error) {
	if tokenFile != "" {
		return cmdutil.ResolveValueInput("@" + strings.TrimPrefix(tokenFile, "@"))
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return cmdutil.ReadInputSource("-")
	}

	// Prompt on stderr so stdout stays clean for machine output.
	_, _ = fmt.Fprint(stderrFromContext(ctx), "Enter your Canvas access token: ")
	tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(stderrFromContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(string(tokenBytes)), nil
}

func newAuthTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print the current access token",
		Long: `Print the access token to stdout.

Useful for piping the token to other tools. The token comes from the
` + auth.EnvVarName + ` environment variable when set, otherwise from
the keyring.

Example:
  curl -H "Authorization: Bearer $(cnv auth token)" ...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			token, err := auth.GetToken()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdoutFromContext(ctx), token)
			return err
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Long: `Display whether a Canvas access token is configured.

Shows the token source (keyring or environment variable), the Canvas
instance it belongs to, the token age, and the stored user, without
displaying the token itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			hasToken := auth.HasToken()

			result := map[string]interface{}{
				"authenticated": hasToken,
			}

			fromEnvVar := os.Getenv(auth.EnvVarName) != ""
			switch {
			case !hasToken:
				result["token_source"] = "none"
			case fromEnvVar:
				result["token_source"] = "environment variable (" + auth.EnvVarName + ")"
			default:
				result["token_source"] = "system keyring"
			}

			if hasToken && !fromEnvVar {
				if metadata, err := auth.GetTokenMetadata(); err == nil && metadata != nil {
					if metadata.BaseURL != "" {
						result["base_url"] = metadata.BaseURL
					}
					if !metadata.CreatedAt.IsZero() {
						age := auth.TokenAgeDays(metadata.CreatedAt)
						result["token_age_days"] = age
						result["token_created_at"] = metadata.CreatedAt.Format("2006-01-02")
						result["token_age"] = auth.FormatTokenAge(metadata.CreatedAt)

						if auth.IsTokenExpiringSoon(metadata.CreatedAt) {
							result["warning"] = fmt.Sprintf("Token is %d days old. Consider rotating it.", age)
						}
					}
				}
			}

			if userInfo, _ := auth.GetUserInfo(); userInfo != nil {
				user := map[string]interface{}{
					"id":   userInfo.ID,
					"name": userInfo.Name,
				}
				if userInfo.LoginID != "" {
					user["login_id"] = userInfo.LoginID
				}
				if userInfo.Email != "" {
					user["email"] = userInfo.Email
				}
				result["user"] = user
			}

			printer := printerForContext(ctx)
			return printer.Print(ctx, result)
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and remove stored credentials",
		Long: `Remove the stored Canvas credentials from the system keyring.

This removes the access token and the cached user information.

Note: If you have set the ` + auth.EnvVarName + ` environment variable,
you will need to unset it separately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := auth.DeleteToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}

			printer := printerForContext(ctx)
			return printer.Print(ctx, map[string]interface{}{
				"status":  "success",
				"message": "Logged out successfully",
			})
		},
	}
}

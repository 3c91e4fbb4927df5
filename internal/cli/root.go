package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dimitrije/eduadmin/internal/api"
	"github.com/dimitrije/eduadmin/internal/config"
	"github.com/dimitrije/eduadmin/internal/request"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// console carries the settings shared by every subcommand once flags and
// environment have been merged.
type console struct {
	cfg *config.Config

	baseURL string
	token   string
	debug   bool
}

func NewRootCommand() *cobra.Command {
	c := &console{}

	rootCmd := &cobra.Command{
		Use:   "console",
		Short: "Edu admin console tooling",
		Long: `Command line access to the edu admin backend: manage collections and schools,
inspect the console route table and run the local dev server with its API proxy.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "Backend base URL (default $CONSOLE_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&c.token, "token", "", "Bearer token (default $CONSOLE_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(NewServeCommand(c))
	rootCmd.AddCommand(NewRoutesCommand())
	rootCmd.AddCommand(NewCollectionCommand(c))
	rootCmd.AddCommand(NewSchoolCommand(c))
	rootCmd.AddCommand(NewTokenCommand(c))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (c *console) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.cfg = cfg

	if !cmd.Flags().Changed("base-url") {
		c.baseURL = cfg.APIBaseURL
	}
	if !cmd.Flags().Changed("token") {
		c.token = cfg.Token
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if c.debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

func (c *console) client() *request.Client {
	opts := []request.ClientOption{
		request.WithBaseURL(c.baseURL),
		request.WithTimeout(c.timeout()),
		request.WithLogger(log.Logger),
	}
	if c.token != "" {
		opts = append(opts, request.WithToken(c.token))
	}
	return request.NewClient(opts...)
}

func (c *console) timeout() time.Duration {
	if c.cfg == nil || c.cfg.Timeout <= 0 {
		return 10 * time.Second
	}
	return c.cfg.Timeout
}

func (c *console) collectionAPI() *api.CollectionAPI {
	return api.NewCollectionAPI(c.client())
}

func (c *console) schoolAPI() *api.SchoolAPI {
	return api.NewSchoolAPI(c.client())
}

type okResponse struct {
	OK bool `json:"ok"`
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func printOK(w io.Writer) error {
	return printJSON(w, okResponse{OK: true})
}

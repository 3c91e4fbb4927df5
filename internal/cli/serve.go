package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dimitrije/eduadmin/internal/config"
	"github.com/dimitrije/eduadmin/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewServeCommand(c *console) *cobra.Command {
	var (
		addr        string
		proxyConfig string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the console dev server",
		Long: `Run the dev server. Requests under a configured proxy prefix (by default /api and
/api/auth) are forwarded to the backend with the prefix stripped; /__console exposes the
route table and /metrics the proxy metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Addr = addr
			}
			if !cmd.Flags().Changed("proxy-config") {
				proxyConfig = c.cfg.ProxyConfigFile
			}

			proxyCfg, err := config.LoadProxy(proxyConfig)
			if err != nil {
				return err
			}
			for _, rule := range proxyCfg.RuleList() {
				log.Info().Str("prefix", rule.Prefix).Str("target", rule.Target).Msg("proxy rule")
			}

			srv, err := server.New(c.cfg, proxyCfg, server.WithLogger(log.Logger))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("dev server stopped: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default $CONSOLE_ADDR or :5666)")
	cmd.Flags().StringVar(&proxyConfig, "proxy-config", "", "YAML proxy table (default $CONSOLE_PROXY_CONFIG)")

	return cmd
}

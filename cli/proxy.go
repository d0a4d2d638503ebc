package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gerunddev/repolens/proxy"
	"github.com/spf13/cobra"
)

func newProxyCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Run the development proxy forwarding API calls to the backend",
		Long: `Serves the API prefix (default /api) and forwards every request below it to
the backend with the prefix removed, e.g. /api/x?y=1 becomes /x?y=1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc := s.cfg.Proxy
			flags := cmd.Flags()
			if flags.Changed("listen") {
				pc.Listen, _ = flags.GetString("listen")
			}
			if flags.Changed("backend") {
				pc.Backend, _ = flags.GetString("backend")
			}
			if flags.Changed("prefix") {
				pc.Prefix, _ = flags.GetString("prefix")
			}

			h, err := proxy.New(proxy.Options{Prefix: pc.Prefix, Backend: pc.Backend})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cmd.Printf("Proxying %s on http://%s to %s\n", pc.Prefix, pc.Listen, pc.Backend)
			return proxy.Serve(ctx, pc.Listen, h)
		},
	}

	cmd.Flags().String("listen", "", "address to listen on (default from config)")
	cmd.Flags().String("backend", "", "backend base URL (default from config)")
	cmd.Flags().String("prefix", "", "path prefix to forward (default from config)")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polyfold/polyfold/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline as a JSON HTTP API",
		Long: `Serve the pipeline over HTTP until interrupted.

Routes:
  GET  /healthz
  POST /v1/skeleton        body: polyhedron
  POST /v1/automorphisms   body: polyhedron
  POST /v1/expand          body: {"polyhedron": ..., "record": ...}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, c.pipelineOptions())
			printInfo("Listening on %s", StyleHighlight.Render(addr))
			printKeyValue("cache", c.cacheLabel())
			if t := c.Config.Search.Timeout; t > 0 {
				printKeyValue("timeout", t.String())
			}
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

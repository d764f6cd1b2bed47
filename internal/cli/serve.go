package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/elementmerge/pkg/buildinfo"
	"github.com/matzehuels/elementmerge/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored models over HTTP",
		Long: `Serve the models of the configured store over an HTTP API.

Each model is loaded on first use and keeps its own undo history. Changes are
written back to the store only by POST /models/{name}/save.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			printInfo("Serving models")
			printKeyValue("Address", addr)
			printKeyValue("Store", cfg.Store.Backend)
			printKeyValue("Build", buildinfo.Get().String())

			srv := server.New(server.Options{
				Store:           st,
				Logger:          c.Logger,
				HistoryLimit:    cfg.Merge.HistoryLimit,
				MergeProperties: cfg.Merge.Properties,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

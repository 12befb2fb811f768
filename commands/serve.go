package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/javaloayza/postboard/projector"
	"github.com/javaloayza/postboard/routes"
	"github.com/javaloayza/postboard/utils"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(rootOpts)
			if err != nil {
				return err
			}
			if port != "" {
				a.cfg.AppPort = port
			}
			return runServe(a)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides APP_PORT)")
	return cmd
}

func runServe(a *app) error {
	view := projector.New(a.engine)
	debounce := projector.NewDebouncer(a.debounce(), func(term string) {
		view.Search(term)
	})

	// Prime the view in the background so the first GET /view has data
	go view.Refresh(context.Background())

	r := routes.SetupRouter(routes.Deps{
		Config:   a.cfg,
		Engine:   a.engine,
		View:     view,
		Debounce: debounce,
	})

	// storage closes only after in-flight requests have drained
	defer a.Close()

	utils.S().Infof("Starting server on port %s (graceful)", a.cfg.AppPort)
	return utils.GraceServer(":"+a.cfg.AppPort, r, debounce.Stop)
}

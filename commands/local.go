package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javaloayza/postboard/reconcile"
)

// NewDiagnosticsCommand creates the diagnostics command.
func NewDiagnosticsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnostics",
		Short: "Show local posts and hidden remote ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()
			return runDiagnostics(cmd, rootOpts, a.engine)
		},
	}
}

func runDiagnostics(cmd *cobra.Command, rootOpts *RootOptions, engine *reconcile.Engine) error {
	d := engine.Diagnostics()
	p := newPrinter(rootOpts, cmd.OutOrStdout())
	if rootOpts.Format == "json" {
		return p.json(d)
	}
	fmt.Fprintf(p.out, "local posts:   %s\n", p.local.Sprint(d.CustomPostCount))
	fmt.Fprintf(p.out, "deleted ids:   %s\n", p.warn.Sprint(d.DeletedPostCount))
	for _, post := range d.CustomPosts {
		fmt.Fprintf(p.out, "  %6d  user %-3d %s\n", post.ID, post.UserID, post.Title)
	}
	if len(d.DeletedIDs) > 0 {
		fmt.Fprintf(p.out, "  hidden: %v\n", d.DeletedIDs)
	}
	return nil
}

// NewClearLocalCommand creates the clear-local command.
func NewClearLocalCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear-local",
		Short: "Irreversibly erase local posts and hidden ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to erase local data without --yes")
			}
			a, err := bootstrap(rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()
			return runClearLocal(cmd, rootOpts, a.engine)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the erase")
	return cmd
}

func runClearLocal(cmd *cobra.Command, rootOpts *RootOptions, engine *reconcile.Engine) error {
	if err := engine.ClearAllLocalData(); err != nil {
		return err
	}
	p := newPrinter(rootOpts, cmd.OutOrStdout())
	if rootOpts.Format == "json" {
		return p.json(map[string]bool{"cleared": true})
	}
	fmt.Fprintln(p.out, p.warn.Sprint("local data cleared"))
	return nil
}

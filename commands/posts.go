package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/javaloayza/postboard/projector"
	"github.com/javaloayza/postboard/reconcile"
)

// NewPostsCommand creates the posts command with its list and show subcommands.
func NewPostsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Read the reconciled post collection",
	}
	cmd.AddCommand(newPostsListCommand(rootOpts))
	cmd.AddCommand(newPostsShowCommand(rootOpts))
	return cmd
}

func newPostsListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		page   int
		search string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()
			return runPostsList(cmd, rootOpts, a.engine, page, search)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by title, body, author name or email")
	return cmd
}

func runPostsList(cmd *cobra.Command, rootOpts *RootOptions, engine *reconcile.Engine, page int, search string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	view := projector.New(engine)
	snap := view.Refresh(ctx)
	if snap.Error != nil {
		return fmt.Errorf("%s", *snap.Error)
	}
	view.Search(search)
	if page != 1 {
		var ok bool
		if snap, ok = view.GoToPage(page); !ok {
			return fmt.Errorf("page %d out of range (1..%d)", page, snap.Pagination.TotalPages)
		}
	}
	snap = view.Snapshot()

	p := newPrinter(rootOpts, cmd.OutOrStdout())
	if rootOpts.Format == "json" {
		return p.json(snap)
	}
	for _, ep := range snap.Posts {
		p.postLine(ep)
	}
	info := snap.Pagination
	fmt.Fprintln(p.out, p.dim.Sprintf("showing %d-%d of %d · page %d/%d", info.StartItem, info.EndItem, info.TotalItems, info.CurrentPage, info.TotalPages))
	return nil
}

func newPostsShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a post with its author and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}
			a, err := bootstrap(rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()
			return runPostsShow(cmd, rootOpts, a.engine, id)
		},
	}
}

func runPostsShow(cmd *cobra.Command, rootOpts *RootOptions, engine *reconcile.Engine, id int) error {
	detail, err := engine.GetPostWithComments(cmd.Context(), id)
	if err != nil {
		return err
	}
	p := newPrinter(rootOpts, cmd.OutOrStdout())
	if rootOpts.Format == "json" {
		return p.json(detail)
	}
	p.postDetail(detail, reconcile.CanEdit(engine.CurrentUserID(), detail.Post))
	return nil
}

package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/javaloayza/postboard/models"
	"github.com/javaloayza/postboard/utils"
)

// printer renders command results as text or JSON.
type printer struct {
	format string
	out    io.Writer
	local  *color.Color
	remote *color.Color
	dim    *color.Color
	warn   *color.Color
}

func newPrinter(opts *RootOptions, out io.Writer) *printer {
	p := &printer{
		format: opts.Format,
		out:    out,
		local:  color.New(color.FgGreen, color.Bold),
		remote: color.New(color.FgCyan),
		dim:    color.New(color.Faint),
		warn:   color.New(color.FgYellow),
	}
	if opts.NoColor {
		for _, c := range []*color.Color{p.local, p.remote, p.dim, p.warn} {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) json(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) provenance(post models.Post) string {
	if post.IsLocal() {
		return p.local.Sprint("local ")
	}
	return p.remote.Sprint("remote")
}

func (p *printer) postLine(ep models.EnrichedPost) {
	fmt.Fprintf(p.out, "%6d  %s  %-24s %s\n",
		ep.ID,
		p.provenance(ep.Post),
		utils.Truncate(ep.User.Name, 24),
		utils.Truncate(ep.Title, 60),
	)
}

func (p *printer) postDetail(d models.PostWithComments, canEdit bool) {
	fmt.Fprintf(p.out, "#%d %s\n", d.ID, p.provenance(d.Post))
	fmt.Fprintf(p.out, "%s\n", d.Title)
	fmt.Fprintf(p.out, "%s\n\n", p.dim.Sprintf("by %s <%s> · %d words · %d min read", d.User.Name, d.User.Email, d.WordCount, d.ReadingTime))
	fmt.Fprintf(p.out, "%s\n", d.Body)
	if canEdit {
		fmt.Fprintln(p.out, p.local.Sprint("\n(editable by the current user)"))
	}
	if len(d.Comments) > 0 {
		fmt.Fprintf(p.out, "\n%d comments\n", len(d.Comments))
		for _, c := range d.Comments {
			fmt.Fprintf(p.out, "  - %s: %s\n", p.dim.Sprint(c.Email), utils.Truncate(c.Body, 80))
		}
	}
}

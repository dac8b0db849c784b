package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/content"
)

var postsStyle string

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Read blog posts from the content file",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := content.Load(cfg.ContentPath)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSLUG\tTITLE")
		for _, p := range site.Posts {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Date.Format("2006-01-02"), p.Slug, p.Title)
		}
		return w.Flush()
	},
}

var postsReadCmd = &cobra.Command{
	Use:   "read <slug>",
	Short: "Render a post in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := content.Load(cfg.ContentPath)
		if err != nil {
			return err
		}
		post, err := site.Post(args[0])
		if err != nil {
			return err
		}
		out, err := renderPost(post, postsStyle)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	postsReadCmd.Flags().StringVar(&postsStyle, "style", "dark", "glamour style (dark, light, notty)")
	postsCmd.AddCommand(postsListCmd, postsReadCmd)
}

func renderPost(p content.Post, style string) (string, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n*%s*", p.Title, p.Date.Format("January 2, 2006"))
	if len(p.Tags) > 0 {
		fmt.Fprintf(&md, " · %s", strings.Join(p.Tags, ", "))
	}
	md.WriteString("\n\n")
	md.WriteString(p.Body)
	return glamour.Render(md.String(), style)
}

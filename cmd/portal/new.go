package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/simars/portal/content"
	"github.com/simars/portal/scaffold"
)

var newAuthor string

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a draft post",
	Long: `Creates content/posts/<slug>.md with front-matter for the given title.
The post is a draft (published: false) until you flip the flag.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		slug := content.Slugify(title)
		if slug == "" {
			return fmt.Errorf("title %q has no usable characters for a slug", title)
		}
		author := newAuthor
		if author == "" {
			author = appConfig.Author
		}

		var buf bytes.Buffer
		err := scaffold.Post(&buf, scaffold.PostData{
			Title:  title,
			Slug:   slug,
			Author: author,
			Date:   time.Now().Format(content.DateLayout),
		})
		if err != nil {
			return err
		}

		name := filepath.Join(appConfig.PostsDir(), slug+".md")
		if _, err := os.Stat(name); err == nil {
			return fmt.Errorf("%s already exists", name)
		}
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", name)
		return nil
	},
}

var initAuthor string

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Create a new portal site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		data := scaffold.NewSiteData(dir, initAuthor, time.Now())
		created, err := scaffold.Site(dir, data)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Creating new portal site: %s\n\n", dir)
		for _, f := range created {
			fmt.Fprintf(out, "  created %s\n", filepath.Join(dir, f))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Done! Next steps:")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  cd %s\n", dir)
		fmt.Fprintln(out, "  portal serve --watch")
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newAuthor, "author", "", "post author (defaults to the site author)")
	initCmd.Flags().StringVar(&initAuthor, "author", "Anonymous", "site author")
}

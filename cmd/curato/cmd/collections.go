package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/curato/curation-client/internal/core/domain"
)

var collectionsCmd = &cobra.Command{
	Use:     "collections",
	Aliases: []string{"c"},
	Short:   "Manage your collections",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your collections, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(a); err != nil {
			return err
		}
		printCollections(cmd.OutOrStdout(), a.Collections.Refresh(cmd.Context()))
		return nil
	},
}

var createInput domain.CollectionInput

var collectionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(a); err != nil {
			return err
		}
		created, err := a.Collections.Create(cmd.Context(), createInput)
		if err != nil {
			return describe(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", created.Title, created.Key())
		return nil
	},
}

var (
	editTitle       string
	editDescription string
	editImage       string
)

var collectionsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a collection",
	Long:  `Change fields of a collection. Only the flags given are sent.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch domain.CollectionPatch
		flags := cmd.Flags()
		if flags.Changed("title") {
			patch.Title = &editTitle
		}
		if flags.Changed("description") {
			patch.Description = &editDescription
		}
		if flags.Changed("image") {
			patch.Image = &editImage
		}
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to change: pass --title, --description or --image")
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(a); err != nil {
			return err
		}
		updated, err := a.Collections.Edit(cmd.Context(), args[0], patch)
		if err != nil {
			return describe(err)
		}
		title := args[0]
		if updated != nil {
			title = updated.Title
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", title)
		return nil
	},
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(a); err != nil {
			return err
		}
		if err := a.Collections.Delete(cmd.Context(), args[0]); err != nil {
			return describe(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Show the public feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		feed, err := a.Collections.Explore(cmd.Context())
		if err != nil {
			return describe(err)
		}
		printCollections(cmd.OutOrStdout(), feed)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search public collections",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		hits, err := a.Collections.Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return describe(err)
		}
		printCollections(cmd.OutOrStdout(), hits)
		return nil
	},
}

func init() {
	createFlags := collectionsCreateCmd.Flags()
	createFlags.StringVar(&createInput.Title, "title", "", "collection title")
	createFlags.StringVar(&createInput.Description, "description", "", "collection description")
	createFlags.StringVar(&createInput.Image, "image", "", "cover image URL")

	editFlags := collectionsEditCmd.Flags()
	editFlags.StringVar(&editTitle, "title", "", "new title")
	editFlags.StringVar(&editDescription, "description", "", "new description")
	editFlags.StringVar(&editImage, "image", "", "new cover image URL")

	collectionsCmd.AddCommand(collectionsListCmd, collectionsCreateCmd, collectionsEditCmd, collectionsDeleteCmd)
	rootCmd.AddCommand(collectionsCmd, exploreCmd, searchCmd)
}

func printCollections(out io.Writer, list []domain.Collection) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No collections.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCREATOR\tLIKES\tCREATED")
	for _, c := range list {
		creator := ""
		if c.Creator != nil {
			creator = c.Creator.Username
		}
		created := "-"
		if !c.CreatedAt.IsZero() {
			created = c.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", c.Key(), c.Title, creator, c.Likes, created)
	}
	_ = tw.Flush()
}

package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"presales/pkg/masters"
)

var mastersCmd = &cobra.Command{
	Use:   "masters",
	Short: "Administer master lists",
	Long: "Administer the reference lists backing the pre-sales screens.\n\n" +
		"Categories: " + strings.Join(masters.Categories, ", "),
}

var mastersListCmd = &cobra.Command{
	Use:   "list <category>",
	Short: "List items in a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}
		return printList(cmd, a, args[0])
	},
}

var mastersCreateCmd = &cobra.Command{
	Use:   "create <category> <name>",
	Short: "Add an item to a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		description, _ := cmd.Flags().GetString("description")
		item, err := a.masters.Create(cmd.Context(), args[0], args[1], description)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n\n", item.Name, item.ID)

		// Mutations never patch a local copy; show the refetched list.
		return printList(cmd, a, args[0])
	},
}

var mastersUpdateCmd = &cobra.Command{
	Use:   "update <category> <id> <name>",
	Short: "Rename an item",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		description, _ := cmd.Flags().GetString("description")
		item, err := a.masters.Update(cmd.Context(), args[0], args[1], args[2], description)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n\n", item.Name, item.ID)
		return printList(cmd, a, args[0])
	},
}

var mastersDeleteCmd = &cobra.Command{
	Use:   "delete <category> <id>",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		if err := a.masters.Delete(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
		fmt.Fprintln(cmd.OutOrStdout())
		return printList(cmd, a, args[0])
	},
}

func printList(cmd *cobra.Command, a *app, category string) error {
	items, err := a.masters.List(cmd.Context(), category)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No items in %s.\n", category)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tCREATED")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			item.ID, item.Name, item.Description, item.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func init() {
	mastersCreateCmd.Flags().String("description", "", "item description")
	mastersUpdateCmd.Flags().String("description", "", "item description")

	mastersCmd.AddCommand(mastersListCmd)
	mastersCmd.AddCommand(mastersCreateCmd)
	mastersCmd.AddCommand(mastersUpdateCmd)
	mastersCmd.AddCommand(mastersDeleteCmd)
}

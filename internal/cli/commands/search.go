package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kondannyobhikkhu/tipitaka/internal/search"
)

// SearchCmd prints the documents matching a query.
func SearchCmd(flags *Flags) *cobra.Command {
	var scopeFlag string
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search documents by number, title or collection",
		Args:  wrapArgs("search", cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, ok := search.ParseScope(scopeFlag)
			if !ok {
				return wrapCommandError("search", fmt.Errorf("unknown scope %q (want dn, mn, sn, an or all)", scopeFlag))
			}
			env, err := flags.Setup(false)
			if err != nil {
				return wrapCommandError("search", err)
			}
			defer env.Close()

			forest, err := env.Store().Load()
			if err != nil {
				return wrapCommandError("search", err)
			}
			docs, ok := search.NewIndex(forest).Search(scope, strings.Join(args, " "))
			if !ok {
				return nil
			}
			if jsonOut {
				return writeJSON(cmd, documentsJSON(docs))
			}
			for _, doc := range docs {
				fmt.Fprintln(cmd.OutOrStdout(), search.Label(doc))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scopeFlag, "scope", "all", "Collection to search (dn, mn, sn, an or all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	return cmd
}

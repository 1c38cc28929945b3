package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kondannyobhikkhu/tipitaka/internal/metadata"
)

// TreeCmd prints the collection hierarchy.
func TreeCmd(flags *Flags) *cobra.Command {
	var collection string
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the collection hierarchy",
		Args:  wrapArgs("tree", cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.Setup(false)
			if err != nil {
				return wrapCommandError("tree", err)
			}
			defer env.Close()

			forest, err := env.Store().Load()
			if err != nil {
				return wrapCommandError("tree", err)
			}
			if collection != "" {
				c, ok := metadata.FindCollection(forest, metadata.CollectionID(strings.ToUpper(collection)))
				if !ok {
					return wrapCommandError("tree", fmt.Errorf("collection %q not found", collection))
				}
				forest = []*metadata.Collection{c}
			}
			out := cmd.OutOrStdout()
			for _, c := range forest {
				printCollection(out, c)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&collection, "collection", "", "Only print this collection (dn, mn, sn, an)")
	return cmd
}

// printCollection follows the depth-first source order of metadata.Walk.
func printCollection(w io.Writer, c *metadata.Collection) {
	fmt.Fprintln(w, c.Label())
	printDocuments(w, c.Documents, 2)
	for _, d := range c.Divisions {
		fmt.Fprintf(w, "  %s\n", d.Label())
		printDocuments(w, d.Documents, 4)
		for _, s := range d.Subdivisions {
			fmt.Fprintf(w, "    %s\n", s.Label())
			printDocuments(w, s.Documents, 6)
		}
	}
}

func printDocuments(w io.Writer, docs []*metadata.Document, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, doc := range metadata.ValidDocuments(docs) {
		fmt.Fprintf(w, "%s%s\n", pad, doc.Label())
	}
}

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// EditionsCmd lists the sibling editions of a document.
func EditionsCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "editions <path>",
		Short: "List the sibling editions of a document",
		Args:  wrapArgs("editions", cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.Setup(false)
			if err != nil {
				return wrapCommandError("editions", err)
			}
			defer env.Close()

			id, err := env.Editions.Resolve(args[0])
			if err != nil {
				return wrapCommandError("editions", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "base: %s\n", id.Base)
			for _, ed := range env.Editions {
				path, err := id.Sibling(ed.Code)
				if err != nil {
					return wrapCommandError("editions", err)
				}
				mark := "-"
				if info, err := os.Stat(path); err == nil && !info.IsDir() {
					mark = "✓"
				}
				current := ""
				if ed.Code == id.Edition.Code {
					current = " (current)"
				}
				fmt.Fprintf(out, "%s %-3s %-22s %s%s\n", mark, ed.Code, ed.Label, path, current)
			}
			return nil
		},
	}
}

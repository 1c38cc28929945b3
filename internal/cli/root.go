package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kondannyobhikkhu/tipitaka/internal/cli/commands"
	"github.com/kondannyobhikkhu/tipitaka/internal/metadata"
	"github.com/kondannyobhikkhu/tipitaka/internal/pane"
	"github.com/kondannyobhikkhu/tipitaka/internal/reader"
	"github.com/kondannyobhikkhu/tipitaka/internal/tui"
)

func Execute() error {
	return NewRoot().Execute()
}

var runTUI = func(opts tui.Options) error {
	return tui.Run(opts)
}

func NewRoot() *cobra.Command {
	flags := &commands.Flags{}
	root := &cobra.Command{
		Use:          "tipitaka",
		Short:        "Browse, search and read the Pali canon",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(flags, "", false, "")
		},
	}
	flags.Bind(root)
	root.AddCommand(
		openCmd(flags),
		pairCmd(flags),
		commands.SearchCmd(flags),
		commands.TreeCmd(flags),
		commands.EditionsCmd(flags),
		commands.ConfigCmd(flags),
	)
	return root
}

func openCmd(flags *commands.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path|number>",
		Short: "Open a document in the reader by path or document number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(flags, args[0], false, "")
		},
	}
}

func pairCmd(flags *commands.Flags) *cobra.Command {
	var editions string
	cmd := &cobra.Command{
		Use:   "pair <path|number>",
		Short: "Open two editions of a document side by side",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(flags, args[0], true, editions)
		},
	}
	cmd.Flags().StringVar(&editions, "editions", "", "Edition pair as left,right (default reader.pair)")
	return cmd
}

// launch resolves the configuration and starts the TUI, optionally with a
// document or an edition pair already open.
func launch(flags *commands.Flags, path string, paired bool, editions string) error {
	env, err := flags.Setup(true)
	if err != nil {
		return err
	}
	defer env.Close()

	opts, err := tuiOptions(env, editions)
	if err != nil {
		return err
	}
	if path != "" {
		doc, err := resolveDocument(opts.Store, path)
		if err != nil {
			return err
		}
		opts.Open = doc
		opts.OpenPair = paired
	}
	return runTUI(opts)
}

// resolveDocument accepts a file path or a document number such as "dn1"
// or "MN 10".
func resolveDocument(store *metadata.Store, arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	_, statErr := os.Stat(abs)
	if statErr == nil {
		return abs, nil
	}
	if doc, ok := store.Document(arg); ok {
		return filepath.Abs(doc.Path)
	}
	return "", fmt.Errorf("open %s: not a file or a known document number: %w", arg, statErr)
}

func tuiOptions(env *commands.Env, editions string) (tui.Options, error) {
	pairSpec := env.Config.Reader.Pair
	if editions != "" {
		pairSpec = editions
	}
	opts := tui.Options{
		Store:    env.Store(),
		Editions: env.Editions,
		Reader: reader.Options{
			RenderMarkdown: env.Config.Reader.RenderMarkdown,
			Watch:          env.Config.Reader.Watch,
		},
	}
	if pairSpec != "" {
		left, right, err := pane.ParsePair(pairSpec)
		if err != nil {
			return tui.Options{}, err
		}
		for _, code := range []string{left, right} {
			if _, ok := env.Editions.Lookup(code); !ok {
				return tui.Options{}, fmt.Errorf("unknown edition %q (known: %v)", code, env.Editions.Codes())
			}
		}
		opts.PairLeft, opts.PairRight = left, right
	}
	return opts, nil
}

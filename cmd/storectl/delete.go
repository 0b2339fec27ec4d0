package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/storectl/internal/cli"
	"github.com/jacksmith/storectl/internal/flow"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a store",
	Long: `Delete a store after confirmation.

Without --preview a yes/no confirmation is enough. With --preview the store
is fetched and shown first, and deletion requires typing DELETE exactly.

--yes answers the yes/no question; --confirm supplies the typed text. Both
skip the prompt, for use in scripts.

Examples:
  storectl delete 5                    # asks "are you sure?"
  storectl delete 5 --yes
  storectl delete 5 --preview          # shows the store, asks for DELETE
  storectl delete 5 --preview --confirm=DELETE`,
	Args:              cobra.ExactArgs(1),
	RunE:              runDelete,
	ValidArgsFunction: completeStoreIDs,
}

var (
	deletePreview bool
	deleteYes     bool
	deleteConfirm string
)

func init() {
	deleteCmd.Flags().BoolVar(&deletePreview, "preview", false, "fetch and show the store before confirming")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "answer yes to the confirmation")
	deleteCmd.Flags().StringVar(&deleteConfirm, "confirm", "", "text to confirm a previewed delete with")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	f := flow.NewDeleteFlow(app.client, flow.WithLogger(zap.L()))
	defer f.Close()

	f.SetID(id)
	if deletePreview {
		s, err := f.Preview(cmd.Context())
		if err != nil {
			return cli.TranslateError(err, id)
		}
		cli.StoreTable(*s).Render(os.Stdout)
		fmt.Println()
	}

	deleted, err := f.Delete(cmd.Context(), deleteConfirmer(cmd))
	if err != nil {
		return cli.TranslateError(err, id)
	}
	if !deleted {
		fmt.Println(cli.Yellow("Deletion cancelled."))
		return nil
	}

	cli.Success(os.Stdout, f.State().Success)
	return nil
}

func deleteConfirmer(cmd *cobra.Command) flow.Confirmer {
	if cmd.Flags().Changed("yes") || cmd.Flags().Changed("confirm") {
		return cli.StaticConfirmer{Yes: deleteYes, Token: deleteConfirm}
	}
	if cli.IsTerminal(os.Stdin) {
		return cli.FormConfirmer{}
	}
	return cli.LineConfirmer{In: cli.NewLineReader(cmd.InOrStdin()), Out: os.Stdout}
}

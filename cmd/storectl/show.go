package main

import (
	"os"

	"github.com/jacksmith/storectl/internal/cli"
	"github.com/jacksmith/storectl/internal/flow"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var showCmd = &cobra.Command{
	Use:               "show <id>",
	Short:             "Show store details",
	Long:              `Fetch a store by ID and show all of its fields.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeStoreIDs,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id := args[0]

	f := flow.NewDetailsFlow(app.client, flow.WithLogger(zap.L()))
	defer f.Close()

	f.SetID(id)
	s, err := f.Fetch(cmd.Context())
	if err != nil {
		return cli.TranslateError(err, id)
	}

	cli.StoreTable(*s).Render(os.Stdout)
	return nil
}

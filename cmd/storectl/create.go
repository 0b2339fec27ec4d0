package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/storectl/internal/cli"
	"github.com/jacksmith/storectl/internal/flow"
	"github.com/jacksmith/storectl/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a store",
	Long: `Create a new store record.

All three fields are required. When none of the flags are given and stdin is
a terminal, a form asks for them.

Examples:
  storectl create --name="Downtown Electronics" --address="1 Main St" --manager="A. Lee"
  storectl create                     # interactive form`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

var (
	createName    string
	createAddress string
	createManager string
)

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "store name")
	createCmd.Flags().StringVar(&createAddress, "address", "", "store address")
	createCmd.Flags().StringVar(&createManager, "manager", "", "manager name")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	draft := model.Draft{StoreName: createName, Address: createAddress, ManagerName: createManager}

	if draft.IsZero() && cli.IsTerminal(os.Stdin) {
		if err := cli.DraftForm(cmd.Context(), "New store", &draft); err != nil {
			return err
		}
	}

	f := flow.NewCreateFlow(app.client, flow.WithLogger(zap.L()))
	defer f.Close()

	for _, field := range model.Fields() {
		if err := f.Set(field, draft.Get(field)); err != nil {
			return err
		}
	}

	created, err := f.Submit(cmd.Context())
	if err != nil {
		return cli.TranslateError(err, "")
	}

	cli.Success(os.Stdout, f.State().Success)
	fmt.Println()
	cli.StoreTable(*created).Render(os.Stdout)
	return nil
}

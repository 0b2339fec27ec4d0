package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jacksmith/storectl/internal/cli"
	"github.com/jacksmith/storectl/internal/flow"
	"github.com/jacksmith/storectl/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a store",
	Long: `Update an existing store.

The store is fetched first; the update is only sent if that succeeds. Fields
not given keep their current values. The ID itself cannot be changed.

Use flags to change specific fields, or -i to edit in $EDITOR. With no flags
on a terminal, a form prefilled with the current values is shown.

Examples:
  storectl update 7 --manager="B. Kim"
  storectl update 7 --name="Uptown Electronics" --address="9 High St"
  storectl update 7 -i                          # open in $EDITOR`,
	Args:              cobra.ExactArgs(1),
	RunE:              runUpdate,
	ValidArgsFunction: completeStoreIDs,
}

var (
	updateName        string
	updateAddress     string
	updateManager     string
	updateInteractive bool
)

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "set store name")
	updateCmd.Flags().StringVar(&updateAddress, "address", "", "set store address")
	updateCmd.Flags().StringVar(&updateManager, "manager", "", "set manager name")
	updateCmd.Flags().BoolVarP(&updateInteractive, "interactive", "i", false, "edit in $EDITOR")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]

	f := flow.NewUpdateFlow(app.client, flow.WithLogger(zap.L()))
	defer f.Close()

	if err := f.SetID(id); err != nil {
		return err
	}
	current, err := f.Fetch(cmd.Context())
	if err != nil {
		return cli.TranslateError(err, id)
	}

	changes, err := collectUpdateChanges(cmd, *current)
	if err != nil {
		return err
	}
	for field, value := range changes {
		if err := f.Set(field, value); err != nil {
			return err
		}
	}

	updated, err := f.Submit(cmd.Context())
	if err != nil {
		return cli.TranslateError(err, id)
	}

	cli.Success(os.Stdout, f.State().Success)
	fmt.Println()
	cli.StoreTable(*updated).Render(os.Stdout)
	return nil
}

// collectUpdateChanges returns the fields to change, from $EDITOR, flags or
// a form, in that order of preference.
func collectUpdateChanges(cmd *cobra.Command, current model.Store) (map[model.Field]string, error) {
	changes := make(map[model.Field]string)

	if updateInteractive {
		draft, err := cli.EditStore(current)
		if err != nil {
			return nil, err
		}
		for _, field := range model.Fields() {
			changes[field] = draft.Get(field)
		}
		return changes, nil
	}

	flags := map[string]model.Field{
		"name":    model.FieldStoreName,
		"address": model.FieldAddress,
		"manager": model.FieldManagerName,
	}
	values := map[string]string{
		"name":    updateName,
		"address": updateAddress,
		"manager": updateManager,
	}
	for name, field := range flags {
		if cmd.Flags().Changed(name) {
			changes[field] = values[name]
		}
	}
	if len(changes) > 0 {
		return changes, nil
	}

	if !cli.IsTerminal(os.Stdin) {
		return nil, &cli.ValidationError{Message: "no changes specified"}
	}

	draft := current.Draft()
	if err := cli.DraftForm(cmd.Context(), fmt.Sprintf("Store %s", current.ID), &draft); err != nil {
		return nil, err
	}
	if draft == current.Draft() {
		return nil, errors.New("no changes made")
	}
	for _, field := range model.Fields() {
		changes[field] = draft.Get(field)
	}
	return changes, nil
}

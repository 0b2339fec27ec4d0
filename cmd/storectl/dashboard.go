package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacksmith/storectl/internal/api"
	"github.com/jacksmith/storectl/internal/cli"
	"github.com/jacksmith/storectl/internal/flow"
	"github.com/jacksmith/storectl/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive session with all four forms",
	Long: `Start an interactive session holding a create form, a details view, an
update form and a delete form at once. Each form keeps its own state
between commands, and the panels are redrawn after every command.

Commands (unique prefixes work, e.g. "up sub" for "update submit"):
` + dashboardHelp,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

const dashboardHelp = `  create <field> <value>    set a field of the new store
  create submit             create the store
  details <id>              fetch and show a store
  update id <id>            choose the store to update
  update fetch              load it (required before editing)
  update <field> <value>    change a field of the loaded store
  update submit             save the changes
  update reset              start over with another store
  delete id <id>            choose the store to delete
  delete preview            show it first (then DELETE must be typed)
  delete confirm            delete it after confirmation
  status                    redraw the panels
  help                      show this help
  quit                      leave the session

Fields: name, address, manager`

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	s := newSession(app.client, cmd.InOrStdin(), os.Stdout, flow.WithLogger(zap.L()))
	defer s.close()
	return s.run(cmd.Context())
}

var sessionCommands = []string{"create", "details", "update", "delete", "status", "help", "quit"}

// session is one dashboard run. Commands are read line by line from in, and
// confirmations are read from the same stream.
type session struct {
	in  *cli.LineReader
	out io.Writer

	confirmer flow.Confirmer
	create    *flow.CreateFlow
	details   *flow.DetailsFlow
	update    *flow.UpdateFlow
	delete    *flow.DeleteFlow
}

func newSession(client flow.StoreClient, in io.Reader, out io.Writer, opts ...flow.Option) *session {
	r := cli.NewLineReader(in)
	return &session{
		in:        r,
		out:       out,
		confirmer: cli.LineConfirmer{In: r, Out: out},
		create:    flow.NewCreateFlow(client, opts...),
		details:   flow.NewDetailsFlow(client, opts...),
		update:    flow.NewUpdateFlow(client, opts...),
		delete:    flow.NewDeleteFlow(client, opts...),
	}
}

func (s *session) close() {
	s.create.Close()
	s.details.Close()
	s.update.Close()
	s.delete.Close()
}

func (s *session) run(ctx context.Context) error {
	fmt.Fprintln(s.out, `storectl dashboard. Type "help" for commands.`)
	s.render()

	for {
		fmt.Fprint(s.out, "> ")
		line, err := s.in.ReadLine(ctx)
		if err != nil {
			fmt.Fprintln(s.out)
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		quit, cmdErr := s.execute(ctx, strings.TrimSpace(line))
		if quit {
			return nil
		}
		if cmdErr != nil {
			cli.Failure(s.out, cli.FormatError(cmdErr))
		}
		s.render()
	}
}

// execute runs one command line. Errors the form reports inline are not
// returned.
func (s *session) execute(ctx context.Context, line string) (quit bool, err error) {
	if line == "" {
		return false, nil
	}
	word, rest := splitWord(line)
	name, err := cli.MatchCommand(word, sessionCommands)
	if err != nil {
		return false, err
	}

	switch name {
	case "quit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, dashboardHelp)
		return false, nil
	case "status":
		return false, nil
	case "create":
		before := s.create.State().Alert
		err = s.createCommand(ctx, rest)
		err = dropInline(err, before, s.create.State().Alert)
	case "details":
		before := s.details.State().Error
		s.details.SetID(rest)
		_, err = s.details.Fetch(ctx)
		err = dropInline(err, before, s.details.State().Error)
	case "update":
		before := s.update.State().Error
		err = s.updateCommand(ctx, rest)
		err = dropInline(err, before, s.update.State().Error)
	case "delete":
		before := s.delete.State().Error
		err = s.deleteCommand(ctx, rest)
		err = dropInline(err, before, s.delete.State().Error)
	}
	return false, err
}

// dropInline returns nil when err is already on screen as the form's inline
// message, given that message before and after the command ran. A refused
// command that leaves an older message in place keeps its error.
func dropInline(err error, before, after string) error {
	if err == nil || after == "" {
		return err
	}
	if after != before {
		return nil
	}
	// The same message again: a repeated failure of the same kind.
	var apiErr *api.APIError
	if errors.As(err, &apiErr) || errors.Is(err, flow.ErrIDRequired) || errors.Is(err, flow.ErrConfirmationMismatch) {
		return nil
	}
	return err
}

func (s *session) createCommand(ctx context.Context, args string) error {
	action, value := splitWord(args)
	if field, err := model.ParseField(action); err == nil {
		return s.create.Set(field, value)
	}
	if _, err := cli.MatchCommand(action, []string{"submit"}); err != nil {
		return &cli.ValidationError{Message: "usage: create <field> <value> | create submit"}
	}
	_, err := s.create.Submit(ctx)
	return err
}

func (s *session) updateCommand(ctx context.Context, args string) error {
	action, value := splitWord(args)
	if field, err := model.ParseField(action); err == nil {
		return s.update.Set(field, value)
	}
	name, err := cli.MatchCommand(action, []string{"id", "fetch", "submit", "reset"})
	if err != nil {
		return &cli.ValidationError{Message: "usage: update id <id> | fetch | <field> <value> | submit | reset"}
	}

	switch name {
	case "id":
		return s.update.SetID(value)
	case "fetch":
		_, err = s.update.Fetch(ctx)
	case "submit":
		_, err = s.update.Submit(ctx)
	case "reset":
		err = s.update.Reset()
	}
	return err
}

func (s *session) deleteCommand(ctx context.Context, args string) error {
	action, value := splitWord(args)
	name, err := cli.MatchCommand(action, []string{"id", "preview", "confirm"})
	if err != nil {
		return &cli.ValidationError{Message: "usage: delete id <id> | preview | confirm"}
	}

	switch name {
	case "id":
		s.delete.SetID(value)
	case "preview":
		_, err = s.delete.Preview(ctx)
	case "confirm":
		var deleted bool
		deleted, err = s.delete.Delete(ctx, s.confirmer)
		if err == nil && !deleted {
			fmt.Fprintln(s.out, cli.Yellow("Deletion cancelled."))
		}
	}
	return err
}

func (s *session) render() {
	w := s.out

	cs := s.create.State()
	fmt.Fprintln(w, heading("Create", cs.Loading, "saving"))
	table := cli.DraftTable(cs.Draft)
	table.SetIndent("  ")
	table.Render(w)
	feedback(w, cs.Success, cs.Alert)

	ds := s.details.State()
	fmt.Fprintln(w, heading("Details", ds.Loading, "loading"))
	fmt.Fprintf(w, "  id: %s\n", orDash(ds.ID))
	if ds.Store != nil {
		table = cli.StoreTable(*ds.Store)
		table.SetIndent("  ")
		table.Render(w)
	}
	feedback(w, "", ds.Error)

	us := s.update.State()
	fmt.Fprintln(w, heading("Update", us.Phase == flow.PhaseFetching || us.Phase == flow.PhaseSubmitting, us.Phase.String()))
	id := orDash(us.ID)
	if us.IDLocked {
		id += cli.Gray(" (locked, reset to change)")
	}
	fmt.Fprintf(w, "  id: %s\n", id)
	if us.Phase == flow.PhaseLoaded || us.Phase == flow.PhaseSubmitting {
		table = cli.DraftTable(us.Draft)
		table.SetIndent("  ")
		table.Render(w)
	}
	feedback(w, us.Success, us.Error)

	xs := s.delete.State()
	fmt.Fprintln(w, heading("Delete", xs.Fetching || xs.Deleting, "working"))
	fmt.Fprintf(w, "  id: %s\n", orDash(xs.ID))
	if xs.Preview != nil {
		table = cli.StoreTable(*xs.Preview)
		table.SetIndent("  ")
		table.Render(w)
	}
	feedback(w, xs.Success, xs.Error)
}

func heading(title string, busy bool, status string) string {
	h := "== " + title + " =="
	if busy {
		h += " " + cli.Yellow("("+status+"...)")
	}
	return h
}

func feedback(w io.Writer, success, failure string) {
	if success != "" {
		fmt.Fprintln(w, "  "+cli.Green(success))
	}
	if failure != "" {
		fmt.Fprintln(w, "  "+cli.Red(failure))
	}
}

func orDash(s string) string {
	if s == "" {
		return cli.Gray("-")
	}
	return s
}

// splitWord returns the first word of s and the trimmed remainder.
func splitWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

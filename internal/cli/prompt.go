package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/jacksmith/storectl/internal/flow"
	"github.com/jacksmith/storectl/internal/model"
)

// FormConfirmer asks for confirmation with a terminal form.
type FormConfirmer struct{}

// Confirm shows a yes/no dialog, or a text input when a token is required.
func (FormConfirmer) Confirm(ctx context.Context, req flow.ConfirmRequest) (flow.Confirmation, error) {
	if req.RequireToken {
		var typed string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(req.Title).
					Description(req.Message).
					Placeholder(req.Token).
					Value(&typed),
			),
		)
		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return flow.Declined(), nil
			}
			return flow.Declined(), err
		}
		return flow.ConfirmedWith(typed), nil
	}

	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(req.Title).
				Description(req.Message).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return flow.Declined(), nil
		}
		return flow.Declined(), err
	}
	if !ok {
		return flow.Declined(), nil
	}
	return flow.ConfirmedBoolean(), nil
}

// LineConfirmer asks for confirmation on a line-oriented stream, such as a
// dashboard session reading stdin.
type LineConfirmer struct {
	In  *LineReader
	Out io.Writer
}

// Confirm prints the request and reads one line. A yes/no question accepts
// "y" or "yes"; a token question returns the line as typed. Cancelling ctx
// abandons the prompt with ctx.Err().
func (c LineConfirmer) Confirm(ctx context.Context, req flow.ConfirmRequest) (flow.Confirmation, error) {
	fmt.Fprintln(c.Out, Yellow(req.Title))
	fmt.Fprintln(c.Out, req.Message)
	if !req.RequireToken {
		fmt.Fprint(c.Out, "[y/N] ")
	} else {
		fmt.Fprint(c.Out, "> ")
	}

	line, err := c.In.ReadLine(ctx)
	if err != nil {
		fmt.Fprintln(c.Out)
		return flow.Declined(), err
	}

	if req.RequireToken {
		return flow.ConfirmedWith(line), nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return flow.ConfirmedBoolean(), nil
	}
	return flow.Declined(), nil
}

// StaticConfirmer answers from command-line flags without prompting.
type StaticConfirmer struct {
	Yes   bool   // answer yes/no questions with yes
	Token string // text to answer token questions with
}

// Confirm returns the configured answer.
func (c StaticConfirmer) Confirm(ctx context.Context, req flow.ConfirmRequest) (flow.Confirmation, error) {
	if req.RequireToken {
		if c.Token == "" {
			return flow.Declined(), nil
		}
		return flow.ConfirmedWith(c.Token), nil
	}
	if c.Yes {
		return flow.ConfirmedBoolean(), nil
	}
	return flow.Declined(), nil
}

// DraftForm asks for every field of d with a terminal form. Existing values
// are offered as defaults.
func DraftForm(ctx context.Context, title string, d *model.Draft) error {
	var inputs []huh.Field
	values := map[model.Field]*string{
		model.FieldStoreName:   &d.StoreName,
		model.FieldAddress:     &d.Address,
		model.FieldManagerName: &d.ManagerName,
	}
	for i, f := range model.Fields() {
		label := f.Label()
		input := huh.NewInput().
			Title(strings.ToUpper(label[:1]) + label[1:]).
			Value(values[f]).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("%s is required", label)
				}
				return nil
			})
		if i == 0 {
			input = input.Description(title)
		}
		inputs = append(inputs, input)
	}

	if err := huh.NewForm(huh.NewGroup(inputs...)).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("cancelled")
		}
		return err
	}
	return nil
}

package flow

import "context"

// DeleteToken is the literal a user must type to delete a previewed store.
const DeleteToken = "DELETE"

// ConfirmKind is the outcome of a confirmation dialog.
type ConfirmKind int

const (
	KindDeclined ConfirmKind = iota
	KindConfirmedBoolean
	KindConfirmedWithToken
)

func (k ConfirmKind) String() string {
	switch k {
	case KindConfirmedBoolean:
		return "confirmed"
	case KindConfirmedWithToken:
		return "confirmed-with-token"
	}
	return "declined"
}

// Confirmation is the typed result of a confirmation dialog.
type Confirmation struct {
	Kind  ConfirmKind
	Token string // set for KindConfirmedWithToken
}

// Declined returns a declined confirmation.
func Declined() Confirmation { return Confirmation{Kind: KindDeclined} }

// ConfirmedBoolean returns a yes/no confirmation answered with yes.
func ConfirmedBoolean() Confirmation { return Confirmation{Kind: KindConfirmedBoolean} }

// ConfirmedWith returns a confirmation carrying the text the user typed.
func ConfirmedWith(token string) Confirmation {
	return Confirmation{Kind: KindConfirmedWithToken, Token: token}
}

// ConfirmRequest describes the dialog to show.
type ConfirmRequest struct {
	Title   string
	Message string

	// RequireToken asks the user to type Token instead of answering yes/no.
	RequireToken bool
	Token        string
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, req ConfirmRequest) (Confirmation, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, req ConfirmRequest) (Confirmation, error)

// Confirm calls f(ctx, req).
func (f ConfirmFunc) Confirm(ctx context.Context, req ConfirmRequest) (Confirmation, error) {
	return f(ctx, req)
}

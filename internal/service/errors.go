package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input refused before any backend call.
	ErrValidation = errors.New("validation")
	// ErrIntrouvable marks a resource the backend does not know.
	ErrIntrouvable = errors.New("introuvable")
	// ErrOperationEnCours is returned while the same operation is already in
	// flight for a terminal.
	ErrOperationEnCours = errors.New("opération déjà en cours")
)

// Erreur is a user-facing failure: Message is shown as-is, Kind selects the
// HTTP status.
type Erreur struct {
	Kind    error
	Message string
}

func (e *Erreur) Error() string { return e.Message }

func (e *Erreur) Is(target error) bool { return target == e.Kind }

func invalide(format string, args ...any) error {
	return &Erreur{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func introuvable(format string, args ...any) error {
	return &Erreur{Kind: ErrIntrouvable, Message: fmt.Sprintf(format, args...)}
}

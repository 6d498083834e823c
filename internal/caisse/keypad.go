package caisse

import (
	"errors"
	"strings"
)

// Touche is a key of the on-screen / physical till keypad. The keypad owns no
// value: each key becomes an action routed to whatever field is active.
type Touche string

const (
	ToucheVirgule Touche = "."
	ToucheEffacer Touche = "C"
	ToucheValider Touche = "OK"
)

var ErrToucheInconnue = errors.New("touche inconnue")

// Route turns a key into the action to dispatch. For ToucheValider it returns
// a nil action and valider=true: confirming is the screen's decision, not the
// keypad's.
func Route(t Touche) (a Action, valider bool, err error) {
	k := strings.TrimSpace(string(t))
	switch {
	case len(k) == 1 && k[0] >= '0' && k[0] <= '9':
		return KeypadDigit{Chiffre: k}, false, nil
	case k == string(ToucheVirgule), k == ",":
		return KeypadDigit{Chiffre: "."}, false, nil
	case strings.EqualFold(k, string(ToucheEffacer)):
		return KeypadClear{}, false, nil
	case strings.EqualFold(k, string(ToucheValider)):
		return nil, true, nil
	}
	return nil, false, ErrToucheInconnue
}

// Saisir routes a sequence of keys and folds the resulting actions into s.
// Confirm keys are skipped.
func Saisir(s *State, touches ...Touche) (*State, error) {
	for _, t := range touches {
		a, _, err := Route(t)
		if err != nil {
			return s, err
		}
		if a != nil {
			s = Reduce(s, a)
		}
	}
	return s, nil
}

package caisse

// Reduce applies a to s and returns the resulting state. s is never modified.
// When a changes nothing the same pointer is returned, so callers can skip
// persisting and tests can check identity.
func Reduce(s *State, a Action) *State {
	if s == nil {
		s = NewState()
	}
	switch a := a.(type) {
	case SetProduits:
		n := s.clone()
		n.Produits = a.Produits
		return n

	case AddToPanier:
		return ajouter(s, a)

	case SetQuantite:
		ligne, i := s.Ligne(a.ProduitID)
		if i < 0 {
			return s
		}
		q := borner(a.Quantite, ligne.Produit.Stock)
		if q == ligne.Quantite {
			return s
		}
		n := s.clone()
		n.Panier = remplacerLigne(s.Panier, i, LignePanier{Produit: ligne.Produit, Quantite: q})
		return n

	case RemoveFromPanier:
		_, i := s.Ligne(a.ProduitID)
		if i < 0 {
			return s
		}
		n := s.clone()
		n.Panier = make([]LignePanier, 0, len(s.Panier)-1)
		n.Panier = append(n.Panier, s.Panier[:i]...)
		n.Panier = append(n.Panier, s.Panier[i+1:]...)
		return n

	case ClearPanier:
		n := s.clone()
		n.Panier = nil
		return n

	case SetModePaiement:
		if !a.Mode.Valide() || a.Mode == s.ModePaiement {
			return s
		}
		n := s.clone()
		n.ModePaiement = a.Mode
		return n

	case SetActiveInput:
		// There is no way back to InputAucun except a reset.
		if !a.Input.Valide() || a.Input == s.ActiveInput {
			return s
		}
		n := s.clone()
		n.ActiveInput = a.Input
		return n

	case KeypadDigit:
		if s.ActiveInput == InputAucun || a.Chiffre == "" {
			return s
		}
		n := s.clone()
		p := n.champ(n.ActiveInput)
		*p += a.Chiffre
		return n

	case KeypadClear:
		if s.ActiveInput == InputAucun || s.Champ(s.ActiveInput) == "" {
			return s
		}
		n := s.clone()
		*n.champ(n.ActiveInput) = ""
		return n

	case SetNote:
		n := s.clone()
		switch a.Note {
		case NoteOuverture:
			n.NoteOuverture = a.Texte
		case NoteFermeture:
			n.NoteFermeture = a.Texte
		default:
			return s
		}
		return n

	case SetMotifAnnulation:
		n := s.clone()
		n.MotifAnnulation = a.Motif
		return n

	case SetTransactionAAnnuler:
		n := s.clone()
		n.TransactionAAnnuler = a.ID
		return n

	case ShowDialog:
		if !a.Dialog.Valide() {
			return s
		}
		n := s.clone()
		*n.dialog(a.Dialog) = a.Visible
		return n

	case ResetPaymentForm:
		n := s.clone()
		n.ModePaiement = ModeEspeces
		n.ReferenceCheque = ""
		n.ReferenceCB = ""
		n.MontantRecu = ""
		return n

	case ResetMonnayeurForm:
		n := s.clone()
		n.MonnaieurRecu = ""
		n.MonnaieurRendu = ""
		n.ActiveInput = InputAucun
		return n

	case ResetSessionForm:
		n := s.clone()
		n.NoteOuverture = ""
		n.NoteFermeture = ""
		n.SoldeDeclare = ""
		n.ShowOuvrirSession = false
		n.ShowFermerSession = false
		n.ActiveInput = InputAucun
		return n

	case SetSession:
		n := s.clone()
		n.Session = a.Session
		return n

	case SetTransactions:
		n := s.clone()
		n.Transactions = a.Transactions
		return n

	case SetDerniereVente:
		n := s.clone()
		n.DerniereVente = a.Vente
		return n
	}
	return s
}

// ajouter increments an existing line up to the product's stock, or opens a
// new line at quantity 1. The line keeps the freshest product snapshot.
func ajouter(s *State, a AddToPanier) *State {
	ligne, i := s.Ligne(a.Produit.ID)
	n := s.clone()
	if i < 0 {
		n.Panier = make([]LignePanier, 0, len(s.Panier)+1)
		n.Panier = append(n.Panier, s.Panier...)
		n.Panier = append(n.Panier, LignePanier{Produit: a.Produit, Quantite: 1})
		return n
	}
	q := borner(ligne.Quantite+1, a.Produit.Stock)
	n.Panier = remplacerLigne(s.Panier, i, LignePanier{Produit: a.Produit, Quantite: q})
	return n
}

// borner clamps q to [1, stock]. With a stale stock of 0 the floor wins: a
// line never holds zero or a negative quantity.
func borner(q, stock int) int {
	if q > stock {
		q = stock
	}
	if q < 1 {
		q = 1
	}
	return q
}

func remplacerLigne(panier []LignePanier, i int, l LignePanier) []LignePanier {
	out := make([]LignePanier, len(panier))
	copy(out, panier)
	out[i] = l
	return out
}

package links

import (
	"github.com/google/uuid"

	"github.com/mesh-intelligence/reqmaster/internal/objects"
	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

// Phase is the progress of a link transaction.
type Phase int

// Transaction phases, in order.
const (
	PhasePending   Phase = iota // nothing checked yet
	PhaseValidated              // both records read
	PhaseWroteA                 // A durable (or already linked)
	PhaseCommitted              // both sides durable
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseValidated:
		return "validated"
	case PhaseWroteA:
		return "wrote-a"
	case PhaseCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Transaction links A and B in one project. It validates that both
// records exist, writes A, then writes B. A side that already holds the
// link is not rewritten.
//
// There is no rollback. If writing B fails after A was written, A keeps
// the link and the transaction fails with *types.PartialLinkError naming
// both sides.
type Transaction struct {
	ID      string
	Project string
	A       string
	B       string

	Phase  Phase
	WroteA bool
	WroteB bool

	// Failed is the record the transaction stopped on, if any.
	Failed string
}

func newTransaction(project, a, b string) *Transaction {
	return &Transaction{
		ID:      newTxID(),
		Project: project,
		A:       a,
		B:       b,
	}
}

// newTxID returns a UUID v7 so transaction IDs sort by start time.
func newTxID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Changed reports whether either record was written.
func (tx *Transaction) Changed() bool { return tx.WroteA || tx.WroteB }

// run executes the phases against an open project. The caller holds the
// project's writer lock.
func (tx *Transaction) run(p *objects.Project) error {
	a, err := p.Get(tx.A)
	if err != nil {
		tx.Failed = tx.A
		return err
	}
	b, err := p.Get(tx.B)
	if err != nil {
		tx.Failed = tx.B
		return err
	}
	tx.Phase = PhaseValidated

	if a.AddLink(tx.B) {
		if err := p.Put(a); err != nil {
			tx.Failed = tx.A
			return err
		}
		tx.WroteA = true
	}
	tx.Phase = PhaseWroteA

	if b.AddLink(tx.A) {
		if err := p.Put(b); err != nil {
			tx.Failed = tx.B
			if tx.WroteA {
				return &types.PartialLinkError{
					TxID:    tx.ID,
					Project: tx.Project,
					Written: tx.A,
					Pending: tx.B,
					Err:     err,
				}
			}
			return err
		}
		tx.WroteB = true
	}
	tx.Phase = PhaseCommitted
	return nil
}

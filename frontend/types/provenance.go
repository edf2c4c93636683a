package types

import (
	"github.com/loomlang/loom/frontend/ast"
)

// Provenance tracks the origin and description of a type or declaration.
// Synthesized declarations (a default constructor, a field initializer) have
// no source text of their own and are stamped with the provenance of the
// construct that implied them.
type Provenance struct {
	// Positioner may be nil for fully synthetic provenance
	ast.Positioner
	Desc       string
	OriginName string
}

func (p Provenance) IsOrigin() bool {
	return p.OriginName != ""
}

// Wrapping keeps the receiver's location while taking the new description.
func (p Provenance) Wrapping(new Provenance) Provenance {
	new.Positioner = p.Positioner
	return new
}

// ProvAt builds a Provenance for a source-level construct.
func ProvAt(at ast.Positioner, desc string) Provenance {
	return Provenance{Positioner: at, Desc: desc}
}

type withProvenance struct {
	provenance Provenance
}

func (w withProvenance) prov() Provenance {
	return w.provenance
}

func (p Provenance) embed() withProvenance {
	return withProvenance{provenance: p}
}

var emptyProv = Provenance{}

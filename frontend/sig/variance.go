package sig

// Variance records how a type parameter may vary in its bound positions.
type Variance struct {
	Covariant, Contravariant bool
}

var (
	Bivariant     = Variance{Covariant: true, Contravariant: true}
	Covariant     = Variance{Covariant: true}
	Contravariant = Variance{Contravariant: true}
	Invariant     = Variance{}
)

func (v Variance) String() string {
	switch v {
	case Bivariant:
		return "bivariant"
	case Covariant:
		return "covariant"
	case Contravariant:
		return "contravariant"
	default:
		return "invariant"
	}
}

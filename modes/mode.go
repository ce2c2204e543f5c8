package modes

type Mode uint8

const (
	ModeProduction Mode = iota + 1
	ModeDevelopment
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeDevelopment:
		return "development"
	}
	return "unknown"
}

// Deterministic reports whether sources of randomness should use fixed seeds.
func (m Mode) Deterministic() bool {
	return m != ModeProduction
}

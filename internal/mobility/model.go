package mobility

// Model is a collection of agents evaluated together.
type Model struct {
	Agents []*Agent
}

// NewModel creates a model over the given agents.
func NewModel(agents ...*Agent) *Model {
	return &Model{Agents: agents}
}

// UniversalDecentMobility reports whether every agent in the model has
// decent mobility under the given strictness. Evaluation short-circuits at
// the first agent that fails.
func (m *Model) UniversalDecentMobility(s Strictness) (bool, error) {
	for _, a := range m.Agents {
		ok, err := a.HasDecentMobility(s)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

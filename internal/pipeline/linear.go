package pipeline

// Step is one entry in a linear chain: name, body, fixed inputs, description.
type Step struct {
	Name        string
	Body        Body
	Inputs      map[string]any
	Description string
}

// NewLinear builds a strictly linear graph from the ordered steps: the first
// step is the sole start node and each consecutive pair is connected in
// sequence. It is a convenience over AddStartNode/AddNode/Connect for the
// common no-fan-out case.
func NewLinear(name, description string, steps []Step) (*Graph, error) {
	g := New(name, description)
	prev := ""
	for i, step := range steps {
		node := NewNode(step.Name, step.Body).WithInputs(step.Inputs).WithDescription(step.Description)
		var err error
		if i == 0 {
			err = g.AddStartNode(node)
		} else {
			err = g.AddNode(node)
		}
		if err != nil {
			return nil, err
		}
		if prev != "" {
			if err := g.Connect(prev, step.Name); err != nil {
				return nil, err
			}
		}
		prev = step.Name
	}
	return g, nil
}

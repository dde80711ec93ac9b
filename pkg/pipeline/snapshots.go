package pipeline

// Snapshot is the value recorded for one step.
type Snapshot struct {
	Step  StepName
	Value Value
}

// Snapshots maps step names to the value each step produced, in execution order.
// Storing a value under a name that is already present replaces the value and keeps
// the original position.
type Snapshots struct {
	order  []StepName
	values map[StepName]Value
}

func newSnapshots() *Snapshots {
	return &Snapshots{
		values: make(map[StepName]Value),
	}
}

func (s *Snapshots) set(name StepName, value Value) {
	if _, ok := s.values[name]; !ok {
		s.order = append(s.order, name)
	}
	s.values[name] = value
}

// Get returns the value recorded for name.
func (s *Snapshots) Get(name StepName) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Len returns the number of recorded steps.
func (s *Snapshots) Len() int {
	return len(s.order)
}

// Names returns the recorded step names in execution order.
func (s *Snapshots) Names() []StepName {
	names := make([]StepName, len(s.order))
	copy(names, s.order)

	return names
}

// Entries returns the recorded snapshots in execution order.
func (s *Snapshots) Entries() []Snapshot {
	entries := make([]Snapshot, 0, len(s.order))
	for _, name := range s.order {
		entries = append(entries, Snapshot{Step: name, Value: s.values[name]})
	}

	return entries
}

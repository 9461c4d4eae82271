package stepkernel

// StateElement describes a mutable global: its name and, optionally, a
// default value substituted when no binding for it is present in a
// given StateMap. State elements back state variables, dynamic
// parameters such as "third-person-singular mode," and the persistent
// branch-position counter used by Sequence.
type StateElement struct {
	Name       string
	Default    Term
	HasDefault bool
}

// NewStateElement declares a state element with no default; Lookup
// returns ok=false until something binds it.
func NewStateElement(name string) StateElement {
	return StateElement{Name: name}
}

// NewStateElementWithDefault declares a state element whose Lookup
// falls back to def when nothing has bound it yet.
func NewStateElementWithDefault(name string, def Term) StateElement {
	return StateElement{Name: name, Default: def, HasDefault: true}
}

// StateMap is a persistent mapping from state-element name to term.
// Bind returns a new map and leaves the receiver untouched; readers
// holding an older StateMap value never observe a later Bind.
type StateMap struct {
	entries map[string]Term
}

// EmptyState is the state map with no bindings.
var EmptyState = &StateMap{}

// Lookup returns the term bound to elem in s, falling back to elem's
// default if declared. ok is false only when elem is unbound and has
// no default.
func (s *StateMap) Lookup(elem StateElement) (Term, bool) {
	if s != nil {
		if v, present := s.entries[elem.Name]; present {
			return v, true
		}
	}
	if elem.HasDefault {
		return elem.Default, true
	}
	return nil, false
}

// LookupByName is Lookup for callers that only have the element's name
// (e.g. a module-global lookup where the default is looked up
// separately in the module's default table).
func (s *StateMap) LookupByName(name string) (Term, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.entries[name]
	return v, ok
}

// Bind returns a new StateMap with elem's name bound to value. The
// receiver is left unmodified; the new map is a shallow copy of the old
// entries plus one overwrite (the terms themselves are shared), keeping Bind
// cheap relative to the state map's typical size (a handful of
// globals per module, not millions of keys — so a full-copy persistent
// map outperforms a tree-structured HAMT here and needs no extra
// dependency).
func (s *StateMap) Bind(elem StateElement, value Term) *StateMap {
	return s.bindName(elem.Name, value)
}

func (s *StateMap) bindName(name string, value Term) *StateMap {
	n := len(s.entries)
	next := make(map[string]Term, n+1)
	for k, v := range s.entries {
		next[k] = v
	}
	next[name] = value
	return &StateMap{entries: next}
}

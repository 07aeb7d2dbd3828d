package catalog

// Snapshot is the place collection as loaded at startup. It is never mutated
// after NewSnapshot returns, so handlers share it without locking.
type Snapshot struct {
	places []Place
	byID   map[int]int
}

// NewSnapshot copies places into a read-only snapshot. When two records share
// an id the first one wins lookups, matching a linear find.
func NewSnapshot(places []Place) *Snapshot {
	s := &Snapshot{
		places: make([]Place, len(places)),
		byID:   make(map[int]int, len(places)),
	}
	copy(s.places, places)
	for i, p := range s.places {
		if _, dup := s.byID[p.ID]; !dup {
			s.byID[p.ID] = i
		}
	}
	return s
}

// Len reports the number of places.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.places)
}

// Places returns a copy of every place in source order.
func (s *Snapshot) Places() []Place {
	if s == nil {
		return nil
	}
	out := make([]Place, len(s.places))
	copy(out, s.places)
	return out
}

// Get returns the place with id.
func (s *Snapshot) Get(id int) (Place, bool) {
	if s == nil {
		return Place{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return Place{}, false
	}
	return s.places[i], true
}

// eachDistinct visits, in order, only the record Get returns for each id.
// Anything keyed by id (the GEO index, the places table) goes through it so
// it agrees with Get when ids repeat.
func (s *Snapshot) eachDistinct(fn func(Place)) {
	if s == nil {
		return
	}
	for i, p := range s.places {
		if s.byID[p.ID] == i {
			fn(p)
		}
	}
}

// each visits places in order without copying the slice.
func (s *Snapshot) each(fn func(Place)) {
	if s == nil {
		return
	}
	for _, p := range s.places {
		fn(p)
	}
}

package ecs

// entityStore tracks slot generations and recycles freed slots.
type entityStore struct {
	gens []generation
	free []entityID
	live int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gens = append(s.gens, 0)
		id = entityID(len(s.gens))
	}
	s.live++
	return makeEntity(id, s.gens[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	s.gens[e.id()-1]++
	s.free = append(s.free, e.id())
	s.live--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	return s.gens[id-1] == e.generation()
}

// all returns the live entities in slot order.
func (s *entityStore) all() []Entity {
	out := make([]Entity, 0, s.live)
	dead := make(map[entityID]bool, len(s.free))
	for _, id := range s.free {
		dead[id] = true
	}
	for i, gen := range s.gens {
		id := entityID(i + 1)
		if !dead[id] {
			out = append(out, makeEntity(id, gen))
		}
	}
	return out
}

package diary

// Subscribe returns a channel of change events and a func that ends the
// subscription. Sends never block: a subscriber that falls behind misses
// events and should re-read the Store on the next one it gets.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)
	s.subMu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.subMu.Unlock()

	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

func (s *Store) emit(op Op) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- Event{Op: op}:
		default:
		}
	}
}

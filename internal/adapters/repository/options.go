package repository

// Option applies a configuration option to a MemoryStore.
type Option[T Record] func(*MemoryStore[T])

// WithName sets the collection name used as the metrics label.
func WithName[T Record](name string) Option[T] {
	return func(s *MemoryStore[T]) {
		if name != "" {
			s.name = name
		}
	}
}

// WithSeed preloads records. The id counter moves past the highest seeded id.
func WithSeed[T Record](records ...T) Option[T] {
	return func(s *MemoryStore[T]) {
		s.records = append(s.records, records...)
		for _, r := range records {
			if r.RecordID() >= s.nextID {
				s.nextID = r.RecordID() + 1
			}
		}
	}
}

// WithStartID sets the first id handed out by Create. Ignored if a seeded id is already higher.
func WithStartID[T Record](id int) Option[T] {
	return func(s *MemoryStore[T]) {
		if id > s.nextID {
			s.nextID = id
		}
	}
}

package memberset

// Iterator walks over a snapshot of member ids taken when it was created.
// It can be restarted with Reset.
type Iterator struct {
	ids     []ID
	pos     int
	current ID
	resolve func(id ID) (*Member, error)
}

func newIterator(ids []ID, resolve func(id ID) (*Member, error)) *Iterator {
	return &Iterator{
		ids:     ids,
		resolve: resolve,
	}
}

func (it *Iterator) HasNext() bool {
	return it.pos < len(it.ids)
}

// Next advances the iterator and returns the next id.
func (it *Iterator) Next() ID {
	if it.pos >= len(it.ids) {
		panic("no more items in the iterator")
	}

	it.current = it.ids[it.pos]
	it.pos++

	return it.current
}

// Member resolves the id returned by the last call to Next.
func (it *Iterator) Member() (*Member, error) {
	if it.current == NoID {
		return nil, ErrNotFound
	}

	return it.resolve(it.current)
}

// Reset rewinds the iterator to the first id.
func (it *Iterator) Reset() {
	it.pos = 0
	it.current = NoID
}

// Len returns the number of ids in the snapshot.
func (it *Iterator) Len() int {
	return len(it.ids)
}

package graph

// VertexProperty attaches a value to vertices. Missing entries are not an error.
type VertexProperty[T any] struct {
	values map[Vertex]T
}

func NewVertexProperty[T any]() *VertexProperty[T] {
	return &VertexProperty[T]{values: make(map[Vertex]T)}
}

func (p *VertexProperty[T]) Get(v Vertex) (T, bool) {
	t, ok := p.values[v]
	return t, ok
}

func (p *VertexProperty[T]) Insert(v Vertex, t T) {
	p.values[v] = t
}

func (p *VertexProperty[T]) Delete(v Vertex) {
	delete(p.values, v)
}

func (p *VertexProperty[T]) Len() int {
	return len(p.values)
}

// EdgeProperty attaches a value to edges. Missing entries are not an error.
type EdgeProperty[T any] struct {
	values map[Edge]T
}

func NewEdgeProperty[T any]() *EdgeProperty[T] {
	return &EdgeProperty[T]{values: make(map[Edge]T)}
}

func (p *EdgeProperty[T]) Get(e Edge) (T, bool) {
	t, ok := p.values[e]
	return t, ok
}

func (p *EdgeProperty[T]) Insert(e Edge, t T) {
	p.values[e] = t
}

func (p *EdgeProperty[T]) Delete(e Edge) {
	delete(p.values, e)
}

func (p *EdgeProperty[T]) Len() int {
	return len(p.values)
}

package internal

// Queue is the FIFO worklist used by the reachability passes.
type Queue[T any] struct {
	elements []T
}

func (q *Queue[T]) Push(element T) {
	q.elements = append(q.elements, element)
}

func (q *Queue[T]) Len() int {
	return len(q.elements)
}

func (q *Queue[T]) Empty() bool {
	return len(q.elements) == 0
}

func (q *Queue[T]) Pop() T {
	element := q.elements[0]
	q.elements = q.elements[1:]
	return element
}

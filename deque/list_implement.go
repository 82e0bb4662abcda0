package deque

import (
	"heat/model"
)

type ListDeque struct {
	head *node
	tail *node

	size     int
	capacity int
}

type node struct {
	val  model.Frame
	pre  *node
	next *node
}

// 工厂方法
func NewListDeque(capacity int) *ListDeque {
	if capacity < 1 {
		capacity = 1
	}
	head := &node{}
	tail := &node{}
	head.next = tail
	tail.pre = head

	return &ListDeque{
		head:     head,
		tail:     tail,
		capacity: capacity,
	}
}

func (ld *ListDeque) Size() int {
	return ld.size
}

func (ld *ListDeque) Get(z int) model.Frame {
	if z < 0 || z >= ld.size {
		panic("index out of length")
	}
	n := ld.head.next
	for i := 0; i < z; i++ {
		n = n.next
	}
	return n.val
}

func (ld *ListDeque) Traverse(f func(z int, item *model.Frame)) {
	z := 0
	for n := ld.head.next; n != ld.tail; n = n.next {
		f(z, &n.val)
		z++
	}
}

func (ld *ListDeque) insertAfter(pre *node, frame model.Frame) {
	n := &node{val: frame, pre: pre, next: pre.next}
	pre.next.pre = n
	pre.next = n
	ld.size++
}

func (ld *ListDeque) remove(n *node) model.Frame {
	n.pre.next = n.next
	n.next.pre = n.pre
	ld.size--
	return n.val
}

func (ld *ListDeque) AddLast(frame model.Frame) {
	if ld.IsFull() {
		ld.RemoveFirst()
	}
	ld.insertAfter(ld.tail.pre, frame)
}

func (ld *ListDeque) RemoveLast() (model.Frame, bool) {
	if ld.IsEmpty() {
		return model.Frame{}, false
	}
	return ld.remove(ld.tail.pre), true
}

func (ld *ListDeque) AddFirst(frame model.Frame) {
	if ld.IsFull() {
		ld.RemoveLast()
	}
	ld.insertAfter(ld.head, frame)
}

func (ld *ListDeque) RemoveFirst() (model.Frame, bool) {
	if ld.IsEmpty() {
		return model.Frame{}, false
	}
	return ld.remove(ld.head.next), true
}

func (ld *ListDeque) Clear() {
	ld.head.next = ld.tail
	ld.tail.pre = ld.head
	ld.size = 0
}

func (ld *ListDeque) IsFull() bool {
	return ld.size == ld.capacity
}

func (ld *ListDeque) IsEmpty() bool {
	return ld.size == 0
}

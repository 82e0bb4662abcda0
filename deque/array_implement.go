package deque

import (
	"heat/model"
)

// ArrDeque 基于环形数组的双端队列，遍历时局部性更好
type ArrDeque struct {
	arr []model.Frame

	// 头部元素下标
	start int

	// 元素个数
	size int
}

// 工厂方法
func NewArrDeque(capacity int) *ArrDeque {
	if capacity < 1 {
		capacity = 1
	}
	return &ArrDeque{
		arr: make([]model.Frame, capacity),
	}
}

func (ad *ArrDeque) Size() int {
	return ad.size
}

func (ad *ArrDeque) index(z int) int {
	return (ad.start + z) % len(ad.arr)
}

func (ad *ArrDeque) Get(z int) model.Frame {
	if z < 0 || z >= ad.size {
		panic("index out of length")
	}
	return ad.arr[ad.index(z)]
}

func (ad *ArrDeque) Traverse(f func(z int, item *model.Frame)) {
	for z := 0; z < ad.size; z++ {
		f(z, &ad.arr[ad.index(z)])
	}
}

func (ad *ArrDeque) AddLast(frame model.Frame) {
	if ad.IsFull() {
		ad.RemoveFirst()
	}
	ad.arr[ad.index(ad.size)] = frame
	ad.size++
}

func (ad *ArrDeque) RemoveLast() (model.Frame, bool) {
	if ad.IsEmpty() {
		return model.Frame{}, false
	}
	ad.size--
	i := ad.index(ad.size)
	frame := ad.arr[i]
	ad.arr[i] = model.Frame{}
	return frame, true
}

func (ad *ArrDeque) AddFirst(frame model.Frame) {
	if ad.IsFull() {
		ad.RemoveLast()
	}
	ad.start = (ad.start - 1 + len(ad.arr)) % len(ad.arr)
	ad.arr[ad.start] = frame
	ad.size++
}

func (ad *ArrDeque) RemoveFirst() (model.Frame, bool) {
	if ad.IsEmpty() {
		return model.Frame{}, false
	}
	frame := ad.arr[ad.start]
	ad.arr[ad.start] = model.Frame{}
	ad.start = (ad.start + 1) % len(ad.arr)
	ad.size--
	return frame, true
}

func (ad *ArrDeque) Clear() {
	for i := range ad.arr {
		ad.arr[i] = model.Frame{}
	}
	ad.start = 0
	ad.size = 0
}

func (ad *ArrDeque) IsFull() bool {
	return ad.size == len(ad.arr)
}

func (ad *ArrDeque) IsEmpty() bool {
	return ad.size == 0
}

/**
 *
 * 双端队列，保存最近若干次迭代的温度场，供 websocket 客户端回放
 * 队列满时从一端加入元素会挤掉另一端的元素
 *
 */

package deque

import "heat/model"

type Deque interface {
	// 队列的长度
	Size() int

	// 获取队列中对应下标的温度场
	Get(z int) model.Frame

	// 正向遍历
	Traverse(f func(z int, item *model.Frame))

	// 在队列结尾增加一个元素，满时删除头部元素
	AddLast(frame model.Frame)

	// 在队列结尾删除一个元素
	RemoveLast() (model.Frame, bool)

	// 在队列头部增加一个元素，满时删除结尾元素
	AddFirst(frame model.Frame)

	// 在队列头部删除一个元素
	RemoveFirst() (model.Frame, bool)

	// 清空
	Clear()

	IsFull() bool

	IsEmpty() bool
}

// New 根据类型创建队列，未知类型使用数组实现
func New(kind string, capacity int) Deque {
	if kind == "list" {
		return NewListDeque(capacity)
	}
	return NewArrDeque(capacity)
}

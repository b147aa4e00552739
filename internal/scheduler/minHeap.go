package scheduler

import "container/heap"

type PriorityQueue []Task

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	return pq[i].ExecuteAt.Before(pq[j].ExecuteAt)
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *PriorityQueue) Push(x any) {
	*pq = append(*pq, x.(Task))
}

func (pq *PriorityQueue) Pop() any {
	old := *pq
	n := len(old)
	task := old[n-1]
	*pq = old[0 : n-1]
	return task
}

// Peek returns the earliest scheduled task without removing it.
func (pq PriorityQueue) Peek() (Task, bool) {
	if len(pq) == 0 {
		return Task{}, false
	}
	return pq[0], true
}

func BuildMinHeap() *PriorityQueue {
	minHeap := &PriorityQueue{}
	heap.Init(minHeap)
	return minHeap
}

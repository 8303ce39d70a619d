package engine

import (
	"container/heap"
	"time"
)

// TaskID identifies a scheduled task for cancellation
type TaskID uint64

// Task is a deferred unit of work run by the Scheduler at its deadline
// now is the scheduler's virtual time at dispatch
type Task interface {
	Run(now time.Duration)
}

// TaskFunc adapts a plain function to Task
type TaskFunc func(now time.Duration)

func (f TaskFunc) Run(now time.Duration) { f(now) }

// scheduledTask is a queue entry; seq breaks deadline ties in scheduling order
type scheduledTask struct {
	id       TaskID
	deadline time.Duration
	seq      uint64
	interval time.Duration // 0 = one-shot
	task     Task
}

type taskHeap []*scheduledTask

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].deadline != h[j].deadline {
		return h[i].deadline < h[j].deadline
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(*scheduledTask)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// Scheduler is a single-threaded timer queue over virtual time
// Tasks run inside Advance in deadline order, FIFO among equal deadlines
// Not safe for concurrent use; the owner serializes Advance and scheduling calls
type Scheduler struct {
	now       time.Duration
	seq       uint64
	nextID    TaskID
	queue     taskHeap
	live      map[TaskID]struct{}
	cancelled map[TaskID]struct{}
}

// NewScheduler creates an empty scheduler at virtual time zero
func NewScheduler() *Scheduler {
	return &Scheduler{
		live:      make(map[TaskID]struct{}),
		cancelled: make(map[TaskID]struct{}),
	}
}

// Now returns the current virtual time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules task to run once, delay after the current virtual time
func (s *Scheduler) After(delay time.Duration, task Task) TaskID {
	if delay < 0 {
		delay = 0
	}
	return s.push(s.now+delay, 0, task)
}

// Every schedules task to run each interval, first run one interval from now
// Panics on a non-positive interval since it would never let time advance
func (s *Scheduler) Every(interval time.Duration, task Task) TaskID {
	if interval <= 0 {
		panic("engine: Every requires a positive interval")
	}
	return s.push(s.now+interval, interval, task)
}

// Cancel prevents a pending task from running; repeating tasks stop rescheduling
// Safe to call from inside the task being cancelled; unknown or finished IDs are ignored
func (s *Scheduler) Cancel(id TaskID) {
	if _, ok := s.live[id]; ok {
		s.cancelled[id] = struct{}{}
	}
}

// Pending returns the number of queued tasks, cancelled ones included until drained
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Advance moves virtual time forward by dt, running every task due on the way
// Tasks scheduled by a running task are eligible within the same Advance if due
// Returns the number of tasks run
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	ran := 0

	for len(s.queue) > 0 {
		next := s.queue[0]
		if next.deadline > target {
			break
		}
		heap.Pop(&s.queue)

		if s.drop(next.id) {
			continue
		}

		s.now = next.deadline
		next.task.Run(s.now)
		ran++

		if next.interval == 0 {
			delete(s.live, next.id)
			continue
		}
		if !s.drop(next.id) {
			s.seq++
			next.deadline += next.interval
			next.seq = s.seq
			heap.Push(&s.queue, next)
		}
	}

	s.now = target
	return ran
}

// drop forgets a cancelled task and reports whether it was cancelled
func (s *Scheduler) drop(id TaskID) bool {
	if _, ok := s.cancelled[id]; !ok {
		return false
	}
	delete(s.cancelled, id)
	delete(s.live, id)
	return true
}

func (s *Scheduler) push(deadline, interval time.Duration, task Task) TaskID {
	s.nextID++
	s.seq++
	s.live[s.nextID] = struct{}{}
	heap.Push(&s.queue, &scheduledTask{
		id:       s.nextID,
		deadline: deadline,
		seq:      s.seq,
		interval: interval,
		task:     task,
	})
	return s.nextID
}

// Package scheduler runs background corpus warmup: after startup it
// prefetches every chapter's source files into the in-memory cache with
// staggered delays, so cold-start disk reads happen off the request path
// without an IO spike.
package scheduler

import (
	"container/heap"
	"log/slog"
	"sync"
	"time"

	"rizkifajar/quran-api/internal/corpus"
	"rizkifajar/quran-api/internal/data"
)

// ChapterWarmer is the slice of the corpus store the scheduler needs:
// loading a chapter source populates the store's cache as a side effect.
type ChapterWarmer interface {
	ChapterSource(chapterID int, mode data.MushafMode) ([]corpus.RawVerse, error)
}

type Scheduler struct {
	NumWorkers   int
	TaskChannel  chan Task
	DelayedQueue *PriorityQueue
	Store        ChapterWarmer
	Logger       *slog.Logger
	mu           *sync.Mutex
}

func NewScheduler(numWorkers int, store ChapterWarmer, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		TaskChannel:  make(chan Task, 100),
		DelayedQueue: BuildMinHeap(),
		NumWorkers:   numWorkers,
		Store:        store,
		Logger:       logger,
		mu:           &sync.Mutex{},
	}
}

func (s *Scheduler) Submit(task Task) {
	s.TaskChannel <- task
}

func (s *Scheduler) Start() {
	for i := 0; i < s.NumWorkers; i++ {
		go s.worker(s.TaskChannel)
	}

	go s.processDelayedTasks()
}

// ScheduleWarmup queues a prefetch task for every chapter in both mushaf
// modes, spacing them stagger apart starting from now.
func (s *Scheduler) ScheduleWarmup(stagger time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	delay := time.Duration(0)

	for _, mode := range []data.MushafMode{data.ModeKemenag, data.ModeUthmani} {
		for chapterID := corpus.FirstChapter; chapterID <= corpus.LastChapter; chapterID++ {
			heap.Push(s.DelayedQueue, Task{
				Type:      WarmChapterSource,
				ChapterID: chapterID,
				Mode:      mode,
				ExecuteAt: now.Add(delay),
				CreatedAt: now,
			})
			delay += stagger
		}
	}
}

func (s *Scheduler) worker(taskChannel <-chan Task) {
	for task := range taskChannel {
		s.processTask(task)
	}
}

func (s *Scheduler) processTask(task Task) {
	if task.Type != WarmChapterSource {
		return
	}

	// Sources are static local files, so a failed load is not retried; a
	// chapter that fails here fails identically on the request path and is
	// reported there.
	_, err := s.Store.ChapterSource(task.ChapterID, task.Mode)
	if err != nil {
		s.Logger.Error("chapter warmup failed",
			"chapter", task.ChapterID,
			"mode", task.Mode,
			"error", err,
		)
	}
}

func (s *Scheduler) processDelayedTasks() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()

		for {
			task, ok := s.DelayedQueue.Peek()
			if !ok || time.Now().Before(task.ExecuteAt) {
				break
			}

			heap.Pop(s.DelayedQueue)
			s.Submit(task)
		}

		s.mu.Unlock()
	}
}

// ABOUTME: Sequential upload queue with per-file validation and progress
// ABOUTME: Files failing validation are rejected before they ever enqueue

package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/jothyanandanch/ssnapify/internal/config"
)

// Status tracks an item through its lifecycle. Completed and Error are
// terminal: a failed item is never retried by the queue.
type Status int

const (
	StatusPending Status = iota
	StatusUploading
	StatusCompleted
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusUploading:
		return "uploading"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Item is one file queued for upload.
type Item struct {
	Path     string
	Name     string
	Size     int64
	Title    string
	Status   Status
	Progress float64
	Err      error
	Asset    *client.ImageAsset
}

// Uploader is the slice of the API client the queue needs.
type Uploader interface {
	UploadImage(ctx context.Context, file io.Reader, filename, title string, size int64, progress client.ProgressFunc) (*client.ImageAsset, error)
}

// Queue holds validated items and uploads them one at a time. Run mutates
// state from its own goroutine while a render loop reads it, so all state
// lives behind the mutex and accessors hand out value snapshots.
type Queue struct {
	mu    sync.Mutex
	items []Item
}

func NewQueue() *Queue {
	return &Queue{}
}

// Add validates the file at path and enqueues it. Unsupported extensions
// and oversized files are rejected here and never reach the queue. The
// returned Item is a snapshot of the enqueued state.
func (q *Queue) Add(path, title string) (Item, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Item{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Item{}, fmt.Errorf("%s is a directory", path)
	}

	name := filepath.Base(path)
	if err := config.ValidateFile(name, info.Size()); err != nil {
		return Item{}, err
	}

	item := Item{
		Path:   path,
		Name:   name,
		Size:   info.Size(),
		Title:  title,
		Status: StatusPending,
	}
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
	return item, nil
}

// Items returns a snapshot of the queue, safe to read while Run is active.
func (q *Queue) Items() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	snap := make([]Item, len(q.items))
	copy(snap, q.items)
	return snap
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Completed reports how many items reached a terminal state.
func (q *Queue) Completed() (done, failed int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, item := range q.items {
		switch item.Status {
		case StatusCompleted:
			done++
		case StatusError:
			failed++
		}
	}
	return done, failed
}

// ProgressFunc is invoked after every state or progress change, with a
// snapshot of the item that changed.
type ProgressFunc func(item Item)

// update applies a change under the lock and returns the resulting snapshot.
func (q *Queue) update(i int, apply func(*Item)) Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	apply(&q.items[i])
	return q.items[i]
}

// Run uploads pending items strictly in order. A failure marks that item
// and moves on; only context cancellation stops the queue early.
func (q *Queue) Run(ctx context.Context, uploader Uploader, onProgress ProgressFunc) error {
	notify := func(item Item) {
		if onProgress != nil {
			onProgress(item)
		}
	}

	q.mu.Lock()
	count := len(q.items)
	q.mu.Unlock()

	for i := 0; i < count; i++ {
		q.mu.Lock()
		pending := q.items[i].Status == StatusPending
		q.mu.Unlock()
		if !pending {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		notify(q.update(i, func(it *Item) { it.Status = StatusUploading }))

		asset, err := q.uploadOne(ctx, uploader, i, notify)
		if err != nil {
			notify(q.update(i, func(it *Item) {
				it.Status = StatusError
				it.Err = err
			}))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		notify(q.update(i, func(it *Item) {
			it.Status = StatusCompleted
			it.Progress = 1.0
			it.Asset = asset
		}))
	}
	return nil
}

func (q *Queue) uploadOne(ctx context.Context, uploader Uploader, i int, notify ProgressFunc) (*client.ImageAsset, error) {
	q.mu.Lock()
	item := q.items[i]
	q.mu.Unlock()

	file, err := os.Open(item.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", item.Path, err)
	}
	defer file.Close()

	return uploader.UploadImage(ctx, file, item.Name, item.Title, item.Size, func(frac float64) {
		notify(q.update(i, func(it *Item) { it.Progress = frac }))
	})
}

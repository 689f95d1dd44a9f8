package content

import (
	"context"
	"sync"

	"github.com/goomento/pagebuilder/internal/domain"
)

type queueContextKey struct{}

// FlushFunc writes the snapshots buffered during a queued operation. It is
// safe to call more than once; only the first call writes.
type FlushFunc func(ctx context.Context) error

type snapshotRequest struct {
	content *Content
	status  domain.Status
	label   *string
}

// revisionQueue buffers snapshot requests for an operation, coalescing
// repeated captures of the same content+status pair so only the last state
// is written.
type revisionQueue struct {
	mu      sync.Mutex
	order   []string
	pending map[string]*snapshotRequest
	flushed bool
}

func newRevisionQueue() *revisionQueue {
	return &revisionQueue{pending: make(map[string]*snapshotRequest)}
}

func queueFrom(ctx context.Context) *revisionQueue {
	queue, _ := ctx.Value(queueContextKey{}).(*revisionQueue)
	return queue
}

func (q *revisionQueue) enqueue(record *Content, status domain.Status, label *string) (*Revision, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.flushed {
		return nil, ErrFlushAlreadyApplied
	}

	key := record.ID.String() + "|" + string(status)
	if _, exists := q.pending[key]; !exists {
		q.order = append(q.order, key)
	}
	copied := CloneContent(record)
	q.pending[key] = &snapshotRequest{content: copied, status: status, label: label}

	// Transient placeholder; the durable row gets its id and seq at flush.
	return &Revision{
		ContentID: record.ID,
		Status:    status,
		Label:     label,
		Elements:  copied.Elements,
		Settings:  copied.Settings,
		AuthorID:  copied.LastEditorID,
	}, nil
}

// drain marks the queue flushed and hands back the buffered requests in
// enqueue order. Subsequent drains return nothing.
func (q *revisionQueue) drain() []*snapshotRequest {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.flushed {
		return nil
	}
	q.flushed = true

	requests := make([]*snapshotRequest, 0, len(q.order))
	for _, key := range q.order {
		requests = append(requests, q.pending[key])
	}
	q.order = nil
	q.pending = map[string]*snapshotRequest{}
	return requests
}

// BeginQueued scopes a snapshot buffer to the returned context: Create calls
// made with it defer their writes until the returned flush runs. Nesting is
// safe; an inner BeginQueued joins the outer buffer and its flush is a no-op
// so snapshots are written exactly once, by the outermost flush.
func (m *RevisionManager) BeginQueued(ctx context.Context) (context.Context, FlushFunc) {
	if queueFrom(ctx) != nil {
		return ctx, func(context.Context) error { return nil }
	}

	queue := newRevisionQueue()
	queuedCtx := context.WithValue(ctx, queueContextKey{}, queue)

	flush := func(flushCtx context.Context) error {
		requests := queue.drain()
		for _, req := range requests {
			if _, err := m.persist(flushCtx, req.content, req.status, req.label); err != nil {
				return err
			}
		}
		return nil
	}

	return queuedCtx, flush
}

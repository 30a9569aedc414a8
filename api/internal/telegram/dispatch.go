package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const chatQueueSize = 16

type chatQueue struct {
	ch      chan tgbotapi.Update
	pending int
}

// dispatcher runs each chat's updates in order on a goroutine of its own, so a
// slow reply in one chat does not hold up the others. A chat's goroutine exits
// once its queue drains.
type dispatcher struct {
	handle func(context.Context, tgbotapi.Update)

	mu     sync.Mutex
	queues map[int64]*chatQueue
	wg     sync.WaitGroup
}

func newDispatcher(handle func(context.Context, tgbotapi.Update)) *dispatcher {
	return &dispatcher{handle: handle, queues: map[int64]*chatQueue{}}
}

func chatOf(upd tgbotapi.Update) int64 {
	if c := upd.FromChat(); c != nil {
		return c.ID
	}
	return 0
}

func (d *dispatcher) dispatch(ctx context.Context, upd tgbotapi.Update) {
	cid := chatOf(upd)

	d.mu.Lock()
	q, ok := d.queues[cid]
	if !ok {
		q = &chatQueue{ch: make(chan tgbotapi.Update, chatQueueSize)}
		d.queues[cid] = q
		d.wg.Add(1)
		go d.run(ctx, cid, q)
	}
	q.pending++
	d.mu.Unlock()

	q.ch <- upd
}

func (d *dispatcher) run(ctx context.Context, cid int64, q *chatQueue) {
	defer d.wg.Done()
	for upd := range q.ch {
		d.handle(ctx, upd)

		d.mu.Lock()
		q.pending--
		if q.pending == 0 {
			delete(d.queues, cid)
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
	}
}

// wait blocks until every dispatched update has been handled.
func (d *dispatcher) wait() { d.wg.Wait() }

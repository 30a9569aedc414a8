package telegram

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatUpdate(id int, chat int64) tgbotapi.Update {
	return tgbotapi.Update{UpdateID: id, Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chat}}}
}

func TestDispatchSlowChatDoesNotBlockOthers(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var order []int

	d := newDispatcher(func(_ context.Context, upd tgbotapi.Update) {
		if upd.UpdateID == 1 {
			<-release
		}
		mu.Lock()
		order = append(order, upd.UpdateID)
		mu.Unlock()
	})

	ctx := context.Background()
	d.dispatch(ctx, chatUpdate(1, 100))
	d.dispatch(ctx, chatUpdate(2, 100))
	d.dispatch(ctx, chatUpdate(3, 200))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 1 && order[0] == 3
	}, 2*time.Second, 10*time.Millisecond)

	close(release)
	d.wait()

	assert.Equal(t, []int{3, 1, 2}, order)
	d.mu.Lock()
	assert.Empty(t, d.queues)
	d.mu.Unlock()
}

func TestDispatchReusesDrainedChat(t *testing.T) {
	var mu sync.Mutex
	seen := map[int]bool{}
	d := newDispatcher(func(_ context.Context, upd tgbotapi.Update) {
		mu.Lock()
		seen[upd.UpdateID] = true
		mu.Unlock()
	})

	ctx := context.Background()
	d.dispatch(ctx, chatUpdate(1, 7))
	d.wait()
	d.dispatch(ctx, chatUpdate(2, 7))
	d.wait()

	assert.Equal(t, map[int]bool{1: true, 2: true}, seen)
}

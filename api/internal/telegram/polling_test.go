package telegram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedUpdater struct {
	mu      sync.Mutex
	steps   []func() ([]tgbotapi.Update, error)
	offsets []int
}

func (u *scriptedUpdater) GetUpdates(cfg tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.offsets = append(u.offsets, cfg.Offset)
	if len(u.steps) == 0 {
		return nil, nil
	}
	step := u.steps[0]
	u.steps = u.steps[1:]
	return step()
}

func TestPollAdvancesOffsetAndSurvivesErrors(t *testing.T) {
	up := &scriptedUpdater{steps: []func() ([]tgbotapi.Update, error){
		func() ([]tgbotapi.Update, error) { return nil, errors.New("connection reset") },
		func() ([]tgbotapi.Update, error) {
			return []tgbotapi.Update{{UpdateID: 7}, {UpdateID: 8}}, nil
		},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	var seen []int
	done := make(chan struct{})
	go func() {
		Poll(ctx, up, func(_ context.Context, upd tgbotapi.Update) {
			mu.Lock()
			seen = append(seen, upd.UpdateID)
			mu.Unlock()
		}, slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()

	require.Eventually(t, func() bool {
		up.mu.Lock()
		defer up.mu.Unlock()
		return len(up.offsets) >= 3
	}, 5*time.Second, 10*time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{7, 8}, seen)
	up.mu.Lock()
	defer up.mu.Unlock()
	assert.Equal(t, []int{0, 0, 9}, up.offsets[:3])
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestRetryDelayFromError(t *testing.T) {
	assert.Equal(t, time.Duration(0), retryDelayFromError(nil))
	assert.Equal(t, 5*time.Second, retryDelayFromError(errors.New("Too Many Requests: retry after 5")))
	assert.Equal(t, 3*time.Second, retryDelayFromError(errors.New("too many requests")))
	assert.Equal(t, 2*time.Second, retryDelayFromError(timeoutErr{}))
	assert.Equal(t, time.Second, retryDelayFromError(errors.New("boom")))
}

package telegram

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	pollTimeoutSec = 30
	baseDelay      = 1 * time.Second
	maxDelay       = 15 * time.Second
	idleDelay      = 200 * time.Millisecond
)

type Updater interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return baseDelay
}

// Poll long-polls for updates until ctx is done. Errors never stop the loop;
// they back off between baseDelay and maxDelay. Updates of one chat are handled
// in order; different chats are handled concurrently. Poll returns after the
// in-flight updates finish.
func Poll(ctx context.Context, bot Updater, handle func(context.Context, tgbotapi.Update), log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	d := newDispatcher(handle)
	defer d.wait()

	offset := 0
	for {
		if ctx.Err() != nil {
			log.Info("polling stopped")
			return
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = pollTimeoutSec

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := min(max(retryDelayFromError(err), baseDelay), maxDelay)
			log.Warn("polling error", "error", err, "retry_in", d)
			sleep(ctx, d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			d.dispatch(ctx, upd)
		}

		if len(updates) == 0 {
			sleep(ctx, idleDelay)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

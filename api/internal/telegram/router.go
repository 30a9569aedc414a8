// Package telegram is a chat intake front end for the same façades the HTTP
// API exposes.
package telegram

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"civic-brain/api/internal/lang"
	"civic-brain/api/internal/speech"
	"civic-brain/api/internal/types"
	"civic-brain/api/internal/util"
)

const defaultTimeout = 180 * time.Second

// Bot is the subset of *tgbotapi.BotAPI the router uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Chatter interface {
	Chat(ctx context.Context, text string, history []types.ChatTurn, language string) string
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, languageHint string) (speech.Transcription, error)
}

type Speaker interface {
	Speak(ctx context.Context, text, language string) *string
}

type Stager interface {
	Download(ctx context.Context, rawURL string) (string, error)
	Delete(path string)
}

type Router struct {
	Bot      Bot
	Brain    Chatter
	Listener Transcriber
	Speaker  Speaker
	Stager   Stager
	Log      *slog.Logger

	// Timeout bounds the handling of one update; zero means defaultTimeout.
	Timeout time.Duration

	state chatState
}

func (r *Router) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil {
		return
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cid := msg.Chat.ID
	switch {
	case msg.IsCommand():
		r.handleCommand(cid, msg)
	case msg.Voice != nil:
		r.handleVoice(ctx, cid, msg.Voice.FileID)
	case msg.Audio != nil:
		r.handleVoice(ctx, cid, msg.Audio.FileID)
	case strings.TrimSpace(msg.Text) != "":
		r.handleText(ctx, cid, msg.Text)
	}
}

func (r *Router) handleCommand(cid int64, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		r.send(cid, greetingText)
	case "language":
		arg := strings.TrimSpace(msg.CommandArguments())
		if arg == "" {
			r.send(cid, languageUsage(lang.OrDefault(r.state.getLanguage(cid))))
			return
		}
		name, ok := lang.Supported(arg)
		if !ok {
			r.send(cid, "Unsupported language: "+arg+"\n"+languageUsage(lang.OrDefault(r.state.getLanguage(cid))))
			return
		}
		r.state.setLanguage(cid, name)
		r.send(cid, "Language set to "+name+".")
	case "reset":
		r.state.reset(cid)
		r.send(cid, resetText)
	default:
		r.send(cid, unknownCmdText)
	}
}

func (r *Router) handleText(ctx context.Context, cid int64, text string) {
	language := r.pickLanguage(cid, text)
	reply := r.Brain.Chat(ctx, text, r.state.getHistory(cid), language)
	r.state.appendTurn(cid, text, reply)

	r.send(cid, util.TruncateRunes(reply, maxMessageRunes))
	r.sendVoice(ctx, cid, reply, language)
}

func (r *Router) handleVoice(ctx context.Context, cid int64, fileID string) {
	log := r.logger().With("chat_id", cid)

	fileURL, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		log.Error("telegram file url", "error", err)
		r.send(cid, voiceFailedText)
		return
	}
	path, err := r.Stager.Download(ctx, fileURL)
	defer r.Stager.Delete(path)
	if err != nil {
		log.Error("voice download", "error", err)
		r.send(cid, voiceFailedText)
		return
	}
	if mt := util.SniffMIMEFile(path); !util.IsAudioMIME(mt) {
		log.Warn("voice note is not audio", "mime", mt)
	}

	hint, _ := lang.TranscriptionCode(r.state.getLanguage(cid))
	t, err := r.Listener.Transcribe(ctx, path, hint)
	if err != nil {
		log.Error("voice transcription", "error", err)
		r.send(cid, voiceFailedText)
		return
	}
	text := strings.TrimSpace(t.Text)
	if text == "" {
		r.send(cid, emptyVoiceText)
		return
	}
	log.Debug("voice transcribed", "language", t.Language, "confidence", t.Confidence)
	r.handleText(ctx, cid, text)
}

// pickLanguage prefers the chat's /language setting, then a reliable detection
// of text among the voiced languages, then the default.
func (r *Router) pickLanguage(cid int64, text string) string {
	if name := r.state.getLanguage(cid); name != "" {
		return name
	}
	return detectLanguage(text)
}

func detectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return lang.Default
	}
	if name, ok := lang.FromSpeechCode(info.Lang.Iso6391()); ok {
		return name
	}
	return lang.Default
}

func (r *Router) send(chatID int64, text string) {
	if _, err := r.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.logger().Error("telegram send", "chat_id", chatID, "error", err)
	}
}

func (r *Router) sendVoice(ctx context.Context, chatID int64, text, language string) {
	if r.Speaker == nil {
		return
	}
	audio := r.Speaker.Speak(ctx, text, language)
	if audio == nil {
		return
	}
	b, err := base64.StdEncoding.DecodeString(*audio)
	if err != nil {
		r.logger().Error("decode speech", "error", err)
		return
	}
	v := tgbotapi.NewVoice(chatID, tgbotapi.FileBytes{Name: "reply.mp3", Bytes: b})
	if _, err := r.Bot.Send(v); err != nil {
		r.logger().Error("telegram send voice", "chat_id", chatID, "error", err)
	}
}

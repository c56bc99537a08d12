package bot_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/varsha-bot/varsha/internal/model/persona"
	"github.com/varsha-bot/varsha/internal/service/bot"
	chatservice "github.com/varsha-bot/varsha/internal/service/chat"
	"github.com/varsha-bot/varsha/internal/telegram"
)

type sentMessage struct {
	chatID int64
	text   string
	markup *telegram.InlineKeyboardMarkup
}

type fakeDispatcher struct {
	sent     []sentMessage
	answered []string
}

func (d *fakeDispatcher) SendMessage(_ context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) error {
	d.sent = append(d.sent, sentMessage{chatID: chatID, text: text, markup: markup})
	return nil
}

func (d *fakeDispatcher) AnswerCallbackQuery(_ context.Context, callbackID string) error {
	d.answered = append(d.answered, callbackID)
	return nil
}

type fakeResponder struct {
	mu     sync.Mutex
	calls  int
	userID int64
	chatID int64
	text   string
	reply  string
}

func (r *fakeResponder) Reply(_ context.Context, userID, chatID int64, text string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.userID = userID
	r.chatID = chatID
	r.text = text
	return r.reply
}

func (r *fakeResponder) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type fixture struct {
	engine     *bot.Service
	dispatcher *fakeDispatcher
	responder  *fakeResponder
	chats      *chatservice.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	registry := persona.NewMemoryRegistry(persona.Seed("Varsha"))
	chats := chatservice.NewService(registry, "sweet")
	dispatcher := &fakeDispatcher{}
	responder := &fakeResponder{reply: "hi"}
	engine := bot.NewService(dispatcher, responder, chats, registry, "Varsha")

	return fixture{engine: engine, dispatcher: dispatcher, responder: responder, chats: chats}
}

func textUpdate(userID, chatID int64, text string) telegram.Update {
	return telegram.Update{
		Message: &telegram.Message{
			From: &telegram.User{ID: userID},
			Chat: telegram.Chat{ID: chatID},
			Text: text,
		},
	}
}

func TestFreeTextGoesToResponder(t *testing.T) {
	f := newFixture(t)

	f.engine.HandleUpdate(context.Background(), textUpdate(1, 10, "hello"))

	if f.responder.callCount() != 1 {
		t.Fatalf("responder called %d times", f.responder.callCount())
	}
	if f.responder.userID != 1 || f.responder.chatID != 10 || f.responder.text != "hello" {
		t.Fatalf("responder got user=%d chat=%d text=%q", f.responder.userID, f.responder.chatID, f.responder.text)
	}
	if len(f.dispatcher.sent) != 1 || f.dispatcher.sent[0].text != "hi" {
		t.Fatalf("unexpected outbound messages: %+v", f.dispatcher.sent)
	}
}

func TestEmptyTextIsSilentlyDropped(t *testing.T) {
	f := newFixture(t)

	f.engine.HandleUpdate(context.Background(), textUpdate(1, 10, "   "))

	if f.responder.callCount() != 0 {
		t.Fatal("responder called for empty text")
	}
	if len(f.dispatcher.sent) != 0 {
		t.Fatalf("unexpected outbound messages: %+v", f.dispatcher.sent)
	}
}

func TestStartCommandGreetsWithHelpButton(t *testing.T) {
	f := newFixture(t)

	f.engine.HandleUpdate(context.Background(), textUpdate(1, 10, "/start"))

	if len(f.dispatcher.sent) != 1 {
		t.Fatalf("expected one greeting, got %d messages", len(f.dispatcher.sent))
	}
	greeting := f.dispatcher.sent[0]
	if !strings.Contains(greeting.text, "Varsha") {
		t.Fatalf("greeting missing bot name: %q", greeting.text)
	}
	if greeting.markup == nil || len(greeting.markup.InlineKeyboard) != 1 {
		t.Fatalf("greeting missing inline keyboard: %+v", greeting.markup)
	}
	if button := greeting.markup.InlineKeyboard[0][0]; button.CallbackData != "show_help" {
		t.Fatalf("unexpected callback payload: %q", button.CallbackData)
	}
	if f.responder.callCount() != 0 {
		t.Fatal("responder called for /start")
	}
}

func TestHelpCallbackAnsweredAndHelpSent(t *testing.T) {
	f := newFixture(t)

	f.engine.HandleUpdate(context.Background(), telegram.Update{
		CallbackQuery: &telegram.CallbackQuery{
			ID:      "cb-1",
			Data:    "show_help",
			Message: &telegram.Message{Chat: telegram.Chat{ID: 10}},
		},
	})

	if len(f.dispatcher.answered) != 1 || f.dispatcher.answered[0] != "cb-1" {
		t.Fatalf("callback not acknowledged: %+v", f.dispatcher.answered)
	}
	if len(f.dispatcher.sent) != 1 || !strings.Contains(f.dispatcher.sent[0].text, "Help Desk") {
		t.Fatalf("help not sent: %+v", f.dispatcher.sent)
	}
}

func TestUnknownCallbackAnsweredWithoutReply(t *testing.T) {
	f := newFixture(t)

	f.engine.HandleUpdate(context.Background(), telegram.Update{
		CallbackQuery: &telegram.CallbackQuery{
			ID:      "cb-2",
			Data:    "something_else",
			Message: &telegram.Message{Chat: telegram.Chat{ID: 10}},
		},
	})

	if len(f.dispatcher.answered) != 1 {
		t.Fatalf("callback not acknowledged: %+v", f.dispatcher.answered)
	}
	if len(f.dispatcher.sent) != 0 {
		t.Fatalf("unexpected outbound messages: %+v", f.dispatcher.sent)
	}
}

func TestCommandTextNeverReachesResponder(t *testing.T) {
	f := newFixture(t)

	f.engine.HandleUpdate(context.Background(), textUpdate(1, 10, "!help"))

	if f.responder.callCount() != 0 {
		t.Fatal("command text leaked into the conversational path")
	}
	if len(f.dispatcher.sent) != 1 {
		t.Fatalf("expected one command reply, got %d", len(f.dispatcher.sent))
	}
}

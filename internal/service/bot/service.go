package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/varsha-bot/varsha/internal/model/persona"
	chatservice "github.com/varsha-bot/varsha/internal/service/chat"
	"github.com/varsha-bot/varsha/internal/telegram"
)

// commandMarker distinguishes command text from conversational text.
const commandMarker = "!"

// startCommand is the Telegram lifecycle token that greets a new chat.
const startCommand = "/start"

// helpCallback is the inline-button payload that requests the help text.
const helpCallback = "show_help"

// Dispatcher delivers outbound messages. Delivery failures are logged and
// never fed back into bot state.
type Dispatcher interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) error
	AnswerCallbackQuery(ctx context.Context, callbackID string) error
}

// Responder produces the conversational reply for free text. It never fails;
// provider errors resolve to a substitute string inside the responder.
type Responder interface {
	Reply(ctx context.Context, userID, chatID int64, text string) string
}

// Service routes one inbound update to the command path, the conversational
// path or a lifecycle reply. Every update yields at most one outbound message.
type Service struct {
	dispatcher Dispatcher
	responder  Responder
	chats      *chatservice.Service
	personas   persona.Registry
	botName    string
}

// NewService wires the update router to its collaborators.
func NewService(dispatcher Dispatcher, responder Responder, chats *chatservice.Service, personas persona.Registry, botName string) *Service {
	return &Service{
		dispatcher: dispatcher,
		responder:  responder,
		chats:      chats,
		personas:   personas,
		botName:    botName,
	}
}

// HandleUpdate processes one inbound update end to end. Safe for concurrent
// use; unrelated updates never serialize behind each other's provider call.
func (s *Service) HandleUpdate(ctx context.Context, update telegram.Update) {
	cid := uuid.NewString()[:8]

	switch {
	case update.CallbackQuery != nil:
		s.handleCallback(ctx, cid, update.CallbackQuery)
	case update.Message != nil:
		s.handleMessage(ctx, cid, update.Message)
	}
}

func (s *Service) handleCallback(ctx context.Context, cid string, query *telegram.CallbackQuery) {
	// Acknowledge first so the client drops its progress indicator even for
	// payloads we do not recognize.
	if err := s.dispatcher.AnswerCallbackQuery(ctx, query.ID); err != nil {
		log.Printf("[bot] cid=%s failed to answer callback %s: %v", cid, query.ID, err)
	}

	if query.Data != helpCallback || query.Message == nil {
		return
	}
	s.send(ctx, cid, query.Message.Chat.ID, s.helpText(), nil)
}

func (s *Service) handleMessage(ctx context.Context, cid string, message *telegram.Message) {
	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	chatID := message.Chat.ID
	log.Printf("[bot] cid=%s message from user=%d chat=%d", cid, senderID(message), chatID)

	if text == startCommand {
		s.send(ctx, cid, chatID, s.greeting(), helpKeyboard())
		return
	}

	if strings.HasPrefix(text, commandMarker) {
		s.handleCommand(ctx, cid, chatID, text)
		return
	}

	if message.From == nil {
		// Conversation memory is keyed by user; without a sender there is
		// nothing to converse as.
		return
	}

	reply := s.responder.Reply(ctx, message.From.ID, chatID, text)
	s.send(ctx, cid, chatID, reply, nil)
}

func (s *Service) send(ctx context.Context, cid string, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) {
	if err := s.dispatcher.SendMessage(ctx, chatID, text, markup); err != nil {
		log.Printf("[bot] cid=%s failed to send to chat=%d: %v", cid, chatID, err)
	}
}

func (s *Service) greeting() string {
	return fmt.Sprintf("Hi! I'm %s.\nJust send me a message and we can talk.", s.botName)
}

func helpKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "Help & Commands", CallbackData: helpCallback}},
		},
	}
}

func senderID(message *telegram.Message) int64 {
	if message.From == nil {
		return 0
	}
	return message.From.ID
}

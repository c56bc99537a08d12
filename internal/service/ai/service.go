package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/varsha-bot/varsha/internal/config"
	"github.com/varsha-bot/varsha/internal/model/chat"
	"github.com/varsha-bot/varsha/internal/model/persona"
	chatservice "github.com/varsha-bot/varsha/internal/service/chat"
	memoryservice "github.com/varsha-bot/varsha/internal/service/memory"
)

// Apology is returned to the user whenever the completion provider fails.
// Failures never escape this service.
const Apology = "Oops, something glitched in my circuits! Try again in a little while."

// Service turns a free-text message into a persona-flavored reply. It owns
// the prompt assembly: persona system prompt first, then the user's prior
// turns, then the new message.
type Service struct {
	chats    *chatservice.Service
	memory   *memoryservice.Service
	personas persona.Registry
	chain    compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the completion chain against the configured provider.
func NewService(ctx context.Context, personas persona.Registry, chats *chatservice.Service, memory *memoryservice.Service, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, personas, chats, memory, chatModel)
}

// NewServiceWithModel wires the chain around an already-built chat model.
func NewServiceWithModel(ctx context.Context, personas persona.Registry, chats *chatservice.Service, memory *memoryservice.Service, chatModel model.BaseChatModel) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chats:    chats,
		memory:   memory,
		personas: personas,
		chain:    runnable,
	}, nil
}

// Reply resolves the chat's persona, invokes the provider with the user's
// history and returns the reply text. Every failure resolves to the apology
// string; memory is only appended after a successful completion.
func (s *Service) Reply(ctx context.Context, userID, chatID int64, userMessage string) string {
	key := s.chats.Get(chatID)
	p, ok := s.personas.Find(key)
	if !ok {
		// The selection store validates writes, so only a misconfigured
		// default key can land here.
		log.Printf("[ai] persona %q not in registry for chat=%d", key, chatID)
		return Apology
	}

	history := s.memory.History(userID)

	response, err := s.chain.Invoke(ctx, map[string]any{
		"system":  p.Prompt,
		"history": historyMessages(history),
		"query":   userMessage,
	})
	if err != nil {
		log.Printf("[ai] completion failed for user=%d chat=%d: %v", userID, chatID, err)
		return Apology
	}

	reply := strings.TrimSpace(response.Content)
	if reply == "" {
		log.Printf("[ai] completion returned empty content for user=%d chat=%d", userID, chatID)
		return Apology
	}

	s.memory.AppendExchange(userID,
		chat.Turn{Role: chat.RoleUser, Content: userMessage},
		chat.Turn{Role: chat.RoleAssistant, Content: reply},
	)

	log.Printf("[ai] generated reply for user=%d chat=%d persona=%s length=%d", userID, chatID, key, len(reply))
	return reply
}

func historyMessages(turns []chat.Turn) []*schema.Message {
	if len(turns) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(turn.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(turn.Content, nil))
		}
	}
	return history
}

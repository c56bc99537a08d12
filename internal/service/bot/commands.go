package bot

import (
	"context"
	"fmt"
	"strings"
)

// handleCommand parses marker-prefixed text and produces exactly one reply.
// At most one persona-store write happens per invocation.
func (s *Service) handleCommand(ctx context.Context, cid string, chatID int64, text string) {
	name, args := parseCommand(text)

	switch name {
	case "help":
		s.send(ctx, cid, chatID, s.helpText(), nil)
	case "persona", "pers":
		s.send(ctx, cid, chatID, s.switchPersona(chatID, args), nil)
	default:
		s.send(ctx, cid, chatID, "Unknown command. Send !help to see what I understand.", nil)
	}
}

// parseCommand splits command text on whitespace. The first token, marker
// stripped and lower-cased, is the command name.
func parseCommand(text string) (string, []string) {
	parts := strings.Fields(text)
	name := strings.ToLower(strings.TrimPrefix(parts[0], commandMarker))
	return name, parts[1:]
}

// switchPersona validates and applies a persona selection for the chat.
// Unknown keys and missing arguments leave the selection untouched.
func (s *Service) switchPersona(chatID int64, args []string) string {
	if len(args) == 0 {
		return "Usage: !persona <name>"
	}

	key := strings.ToLower(args[0])
	if err := s.chats.Set(chatID, key); err != nil {
		return fmt.Sprintf("There is no persona called %q. Available: %s", key, strings.Join(s.personas.Keys(), ", "))
	}

	return fmt.Sprintf("Okay! My persona for this chat is now %q.", key)
}

func (s *Service) helpText() string {
	return fmt.Sprintf(`%s Help Desk

I reply to every message - just talk to me.

Commands:
!help - show this message
!persona <name> - change my persona for this chat
Example: !persona nakchadi

Available personas: %s`, s.botName, strings.Join(s.personas.Keys(), ", "))
}

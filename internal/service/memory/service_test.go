package memory_test

import (
	"fmt"
	"testing"

	"github.com/varsha-bot/varsha/internal/model/chat"
	memory "github.com/varsha-bot/varsha/internal/service/memory"
)

func TestHistoryEmptyForUnknownUser(t *testing.T) {
	svc := memory.NewService(20)

	if got := svc.History(7); len(got) != 0 {
		t.Fatalf("expected empty history, got %d turns", len(got))
	}
}

func TestAppendExchangeKeepsSubmissionOrder(t *testing.T) {
	svc := memory.NewService(20)

	svc.AppendExchange(7,
		chat.Turn{Role: chat.RoleUser, Content: "hello"},
		chat.Turn{Role: chat.RoleAssistant, Content: "hi"},
	)

	turns := svc.History(7)
	if len(turns) != 2 {
		t.Fatalf("unexpected turn count: got %d", len(turns))
	}
	if turns[0].Role != chat.RoleUser || turns[0].Content != "hello" {
		t.Fatalf("unexpected first turn: %+v", turns[0])
	}
	if turns[1].Role != chat.RoleAssistant || turns[1].Content != "hi" {
		t.Fatalf("unexpected second turn: %+v", turns[1])
	}
}

func TestAppendExchangeEvictsOldestPairs(t *testing.T) {
	svc := memory.NewService(2)

	for i := 1; i <= 3; i++ {
		svc.AppendExchange(7,
			chat.Turn{Role: chat.RoleUser, Content: fmt.Sprintf("q%d", i)},
			chat.Turn{Role: chat.RoleAssistant, Content: fmt.Sprintf("a%d", i)},
		)
	}

	turns := svc.History(7)
	if len(turns) != 4 {
		t.Fatalf("history exceeds cap: got %d turns", len(turns))
	}
	if turns[0].Content != "q2" {
		t.Fatalf("oldest pair not evicted, head is %q", turns[0].Content)
	}
	if turns[3].Content != "a3" {
		t.Fatalf("newest pair missing, tail is %q", turns[3].Content)
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	svc := memory.NewService(20)
	svc.AppendExchange(7,
		chat.Turn{Role: chat.RoleUser, Content: "hello"},
		chat.Turn{Role: chat.RoleAssistant, Content: "hi"},
	)

	turns := svc.History(7)
	turns[0].Content = "tampered"

	if got := svc.History(7); got[0].Content != "hello" {
		t.Fatalf("stored history mutated through returned slice: %q", got[0].Content)
	}
}

func TestHistoriesIndependentPerUser(t *testing.T) {
	svc := memory.NewService(20)
	svc.AppendExchange(1,
		chat.Turn{Role: chat.RoleUser, Content: "hello"},
		chat.Turn{Role: chat.RoleAssistant, Content: "hi"},
	)

	if got := svc.History(2); len(got) != 0 {
		t.Fatalf("unrelated user has history: %d turns", len(got))
	}
}

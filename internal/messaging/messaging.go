// Package messaging groups direct messages between users and nonprofits into
// conversations.
package messaging

import (
	"fmt"
	"slices"
	"strings"

	"karma/pkg/types"
)

func ConversationID(userID, nonprofitID string) string {
	return fmt.Sprintf("conv_%s_%s", userID, nonprofitID)
}

// RecipientFor addresses the nonprofit's admin when it has one, otherwise the
// nonprofit's shared inbox.
func RecipientFor(n *types.Nonprofit) string {
	if n.AdminUserID != nil && strings.TrimSpace(*n.AdminUserID) != "" {
		return *n.AdminUserID
	}
	return "nonprofit_" + n.ID
}

type Conversation struct {
	ID        string           `json:"id"`
	Nonprofit *types.Nonprofit `json:"nonprofit,omitempty"`
	Messages  []*types.Message `json:"messages"`
	IsNew     bool             `json:"isNew"`
}

func (c *Conversation) LastMessage() *types.Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// Group builds userID's conversations. When startWith names a known nonprofit
// with no conversation yet, an empty one is added so the user can write first.
// New conversations sort first, then by most recent message.
func Group(userID string, messages []*types.Message, nonprofits []*types.Nonprofit, startWith string) []*Conversation {
	byID := make(map[string]*types.Nonprofit, len(nonprofits))
	for _, n := range nonprofits {
		if n != nil {
			byID[n.ID] = n
		}
	}

	conversations := make(map[string]*Conversation)
	for _, m := range messages {
		if m == nil || (m.SenderID != userID && m.RecipientID != userID) {
			continue
		}

		c, ok := conversations[m.ConversationID]
		if !ok {
			c = &Conversation{ID: m.ConversationID, Nonprofit: byID[m.NonprofitID]}
			conversations[m.ConversationID] = c
		}
		c.Messages = append(c.Messages, m)
	}

	if n, ok := byID[startWith]; ok && startWith != "" {
		id := ConversationID(userID, startWith)
		if _, exists := conversations[id]; !exists {
			conversations[id] = &Conversation{ID: id, Nonprofit: n, Messages: []*types.Message{}, IsNew: true}
		}
	}

	out := make([]*Conversation, 0, len(conversations))
	for _, c := range conversations {
		slices.SortStableFunc(c.Messages, func(a, b *types.Message) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
		out = append(out, c)
	}

	slices.SortFunc(out, func(a, b *Conversation) int {
		if a.IsNew != b.IsNew {
			if a.IsNew {
				return -1
			}
			return 1
		}

		la, lb := a.LastMessage(), b.LastMessage()
		if la != nil && lb != nil {
			if c := lb.CreatedAt.Compare(la.CreatedAt); c != 0 {
				return c
			}
		}
		return strings.Compare(a.ID, b.ID)
	})

	return out
}

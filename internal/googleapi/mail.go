package googleapi

import (
	"context"
	"fmt"

	"june-voice-backend/internal/assistant"
)

// RecentMessages returns sender and subject for the newest count inbox
// messages, newest first.
func (s *Services) RecentMessages(ctx context.Context, count int) ([]assistant.EmailSummary, error) {
	svc, err := s.gmailService(ctx)
	if err != nil {
		return nil, err
	}

	list, err := svc.Users.Messages.List("me").
		LabelIds("INBOX").
		MaxResults(int64(count)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	out := make([]assistant.EmailSummary, 0, len(list.Messages))
	for _, ref := range list.Messages {
		msg, err := svc.Users.Messages.Get("me", ref.Id).
			Format("metadata").
			MetadataHeaders("From", "Subject").
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("get message %s: %w", ref.Id, err)
		}
		var summary assistant.EmailSummary
		if msg.Payload != nil {
			for _, h := range msg.Payload.Headers {
				switch h.Name {
				case "From":
					summary.Sender = h.Value
				case "Subject":
					summary.Subject = h.Value
				}
			}
		}
		out = append(out, summary)
	}
	return out, nil
}

// Package slack collects the author's own channel activity for the week
// through the Slack Web API.
package slack

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	slackapi "github.com/slack-go/slack"

	"github.com/zackciesinski-vercel/515-agent/internal/weekspan"
	"github.com/zackciesinski-vercel/515-agent/report"
)

const historyPageSize = 200

var mentionPattern = regexp.MustCompile(`<@([A-Z0-9]+)(?:\|[^>]*)?>`)

type Source struct {
	client     *slackapi.Client
	channels   []string
	selfUserID string
	logger     *slog.Logger

	names map[string]string
}

// New builds a source over the given channel IDs. When selfUserID is set
// only the author's own messages are collected; otherwise every message
// in the window counts.
func New(botToken string, channels []string, selfUserID string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		client:     slackapi.New(botToken),
		channels:   channels,
		selfUserID: selfUserID,
		logger:     logger,
		names:      make(map[string]string),
	}
}

func (s *Source) FetchActivity(ctx context.Context, span weekspan.Span) ([]report.ChannelActivity, error) {
	var out []report.ChannelActivity
	for _, channelID := range s.channels {
		activity, err := s.fetchChannel(ctx, channelID, span)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", channelID, err)
		}
		if activity.MessageCount == 0 {
			continue
		}
		out = append(out, activity)
	}
	return out, nil
}

func (s *Source) fetchChannel(ctx context.Context, channelID string, span weekspan.Span) (report.ChannelActivity, error) {
	activity := report.ChannelActivity{
		ChannelID:   channelID,
		ChannelName: s.channelName(ctx, channelID),
	}

	params := &slackapi.GetConversationHistoryParameters{
		ChannelID: channelID,
		Oldest:    formatTS(span.Start),
		Latest:    formatTS(span.End),
		Limit:     historyPageSize,
	}

	mentioned := map[string]struct{}{}
	for {
		resp, err := s.client.GetConversationHistoryContext(ctx, params)
		if err != nil {
			return report.ChannelActivity{}, fmt.Errorf("conversation history: %w", err)
		}

		for _, msg := range resp.Messages {
			if s.selfUserID != "" && msg.User != s.selfUserID {
				continue
			}
			sentAt, err := parseTS(msg.Timestamp)
			if err != nil {
				continue
			}
			text := s.rewriteMentions(ctx, msg.Text, mentioned)
			activity.Messages = append(activity.Messages, report.ChatMessage{
				Text:        text,
				SentAt:      sentAt,
				ThreadTS:    msg.ThreadTimestamp,
				ThreadReply: msg.ThreadTimestamp != "" && msg.ThreadTimestamp != msg.Timestamp,
			})
		}

		if !resp.HasMore || resp.ResponseMetaData.NextCursor == "" {
			break
		}
		params.Cursor = resp.ResponseMetaData.NextCursor
	}

	sort.Slice(activity.Messages, func(i, j int) bool {
		return activity.Messages[i].SentAt.Before(activity.Messages[j].SentAt)
	})
	activity.MessageCount = len(activity.Messages)
	for name := range mentioned {
		activity.Mentions = append(activity.Mentions, name)
	}
	sort.Strings(activity.Mentions)
	return activity, nil
}

func (s *Source) channelName(ctx context.Context, channelID string) string {
	info, err := s.client.GetConversationInfoContext(ctx, &slackapi.GetConversationInfoInput{
		ChannelID: channelID,
	})
	if err != nil {
		s.logger.Debug("channel info lookup failed, using id", "channel", channelID, "error", err)
		return channelID
	}
	return info.Name
}

func (s *Source) rewriteMentions(ctx context.Context, text string, mentioned map[string]struct{}) string {
	return rewriteMentionsWith(text, func(userID string) string {
		return s.userName(ctx, userID)
	}, mentioned)
}

// rewriteMentionsWith replaces <@U…> references with the user's display
// name so the model sees human-readable text. Unresolvable references
// are left untouched.
func rewriteMentionsWith(text string, lookup func(string) string, mentioned map[string]struct{}) string {
	return mentionPattern.ReplaceAllStringFunc(text, func(ref string) string {
		userID := mentionPattern.FindStringSubmatch(ref)[1]
		name := lookup(userID)
		if name == "" {
			return ref
		}
		if mentioned != nil {
			mentioned[name] = struct{}{}
		}
		return "@" + name
	})
}

func (s *Source) userName(ctx context.Context, userID string) string {
	if name, ok := s.names[userID]; ok {
		return name
	}
	user, err := s.client.GetUserInfoContext(ctx, userID)
	if err != nil {
		s.logger.Debug("user lookup failed", "user", userID, "error", err)
		s.names[userID] = ""
		return ""
	}
	name := user.Profile.DisplayName
	if name == "" {
		name = user.RealName
	}
	if name == "" {
		name = user.Name
	}
	s.names[userID] = name
	return name
}

func formatTS(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10) + ".000000"
}

func parseTS(ts string) (time.Time, error) {
	secs, _, found := strings.Cut(ts, ".")
	if !found {
		secs = ts
	}
	unix, err := strconv.ParseInt(secs, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad slack timestamp %q", ts)
	}
	return time.Unix(unix, 0), nil
}

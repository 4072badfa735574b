package report

import "time"

// ResponseStatus is the report author's own RSVP on a calendar event.
type ResponseStatus string

const (
	ResponseAccepted    ResponseStatus = "accepted"
	ResponseDeclined    ResponseStatus = "declined"
	ResponseTentative   ResponseStatus = "tentative"
	ResponseNeedsAction ResponseStatus = "needs-action"
	ResponseUnknown     ResponseStatus = "unknown"
)

type CalendarEvent struct {
	ID           string
	Title        string
	Start        time.Time
	End          time.Time
	Attendees    []string
	Recurring    bool
	SelfResponse ResponseStatus
}

// Note is a normalized meeting note from one of the note collaborators.
// IDs are collaborator-specific and never compared across sources.
type Note struct {
	ID          string
	Title       string
	Date        time.Time
	Summary     string
	Body        string
	Attendees   []string
	ActionItems []string
	Mentions    []string
	Source      string
}

// MatchedMeeting pairs an event with at most one note.
type MatchedMeeting struct {
	Event    CalendarEvent
	Note     *Note
	HasNotes bool
}

type ChatMessage struct {
	Text        string
	SentAt      time.Time
	ThreadTS    string
	ThreadReply bool
}

type ChannelActivity struct {
	ChannelID    string
	ChannelName  string
	MessageCount int
	Messages     []ChatMessage
	Mentions     []string
}

type PriorReport struct {
	DateLabel  string
	Priorities []string
	Raw        string
}

// DraftReport is the final artifact handed to a renderer. Reflection is
// always a placeholder reserved for the human author.
type DraftReport struct {
	DateLabel            string
	WeekLabel            string
	TLDR                 string
	WhatIDid             []string
	Reflection           string
	Priorities           []string
	MeetingsWithoutNotes []string
}

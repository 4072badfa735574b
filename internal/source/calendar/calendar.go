// Package calendar fetches a subscribed ICS feed and normalizes its
// events for the reporting window. Recurring series are expanded so
// their in-window instances can be recognized and flagged.
package calendar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/zackciesinski-vercel/515-agent/internal/weekspan"
	"github.com/zackciesinski-vercel/515-agent/report"
)

type Source struct {
	url       string
	selfEmail string
	client    *http.Client
	logger    *slog.Logger
}

func New(url, selfEmail string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		url:       url,
		selfEmail: strings.ToLower(selfEmail),
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

func (s *Source) FetchEvents(ctx context.Context, span weekspan.Span) ([]report.CalendarEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build calendar request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar feed returned %s", resp.Status)
	}

	events, err := parseICS(resp.Body, span, s.selfEmail)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("calendar feed parsed", "events", len(events))
	return events, nil
}

// parseICS decodes every VEVENT in the feed and keeps the instances that
// fall inside span. Cancelled events are dropped; recurring masters are
// expanded through their RRULE and each instance is flagged Recurring.
func parseICS(r io.Reader, span weekspan.Span, selfEmail string) ([]report.CalendarEvent, error) {
	selfEmail = strings.ToLower(selfEmail)
	dec := ical.NewDecoder(r)
	var events []report.CalendarEvent

	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			if status := comp.Props.Get(ical.PropStatus); status != nil && status.Value == "CANCELLED" {
				continue
			}

			ev, ok := eventFromComponent(comp, selfEmail)
			if !ok {
				continue
			}

			if rruleProp := comp.Props.Get(ical.PropRecurrenceRule); rruleProp != nil {
				events = append(events, expandRecurring(ev, rruleProp.Value, span)...)
				continue
			}
			if span.Contains(ev.Start) {
				events = append(events, ev)
			}
		}
	}
	return events, nil
}

func eventFromComponent(comp *ical.Component, selfEmail string) (report.CalendarEvent, bool) {
	ev := report.CalendarEvent{SelfResponse: report.ResponseUnknown}

	if p := comp.Props.Get(ical.PropUID); p != nil {
		ev.ID = p.Value
	}
	if p := comp.Props.Get(ical.PropSummary); p != nil {
		ev.Title = p.Value
	}

	start := comp.Props.Get(ical.PropDateTimeStart)
	if start == nil {
		return ev, false
	}
	t, err := parseDateTimeProperty(start)
	if err != nil {
		return ev, false
	}
	ev.Start = t

	if end := comp.Props.Get(ical.PropDateTimeEnd); end != nil {
		if t, err := parseDateTimeProperty(end); err == nil {
			ev.End = t
		}
	}
	if ev.End.IsZero() {
		ev.End = ev.Start.Add(time.Hour)
	}

	for _, att := range comp.Props.Values("ATTENDEE") {
		email := strings.ToLower(strings.TrimPrefix(att.Value, "mailto:"))
		if selfEmail != "" && email == selfEmail {
			// The author's RSVP drives filtering; their own name does
			// not belong in the attendee list.
			ev.SelfResponse = responseFromPartStat(att.Params.Get("PARTSTAT"))
			continue
		}
		name := att.Params.Get("CN")
		if name == "" {
			name = strings.TrimPrefix(att.Value, "mailto:")
		}
		ev.Attendees = append(ev.Attendees, name)
	}
	return ev, true
}

func parseDateTimeProperty(prop *ical.Prop) (time.Time, error) {
	if t, err := prop.DateTime(time.Local); err == nil {
		return t, nil
	}

	// Some feeds emit values the library refuses; fall back to the
	// common shapes seen in the wild.
	formats := []string{
		"20060102T150405",
		"20060102T150405Z",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, prop.Value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable datetime %q", prop.Value)
}

func responseFromPartStat(partstat string) report.ResponseStatus {
	switch strings.ToUpper(partstat) {
	case "ACCEPTED":
		return report.ResponseAccepted
	case "DECLINED":
		return report.ResponseDeclined
	case "TENTATIVE":
		return report.ResponseTentative
	case "NEEDS-ACTION":
		return report.ResponseNeedsAction
	default:
		return report.ResponseUnknown
	}
}

func expandRecurring(master report.CalendarEvent, rule string, span weekspan.Span) []report.CalendarEvent {
	ropt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil
	}
	ropt.Dtstart = master.Start
	r, err := rrule.NewRRule(*ropt)
	if err != nil {
		return nil
	}

	duration := master.End.Sub(master.Start)
	var instances []report.CalendarEvent
	for _, start := range r.Between(span.Start, span.End, true) {
		if !span.Contains(start) {
			continue
		}
		inst := master
		inst.ID = master.ID + "-" + start.Format(time.RFC3339)
		inst.Start = start
		inst.End = start.Add(duration)
		inst.Recurring = true
		instances = append(instances, inst)
	}
	return instances
}

// Package feed renders events as an iCalendar (RFC 5545) feed so calendars
// can subscribe to them.
package feed

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/calendario-app/calendario-backend/internal/events/domain"
)

const productID = "-//calendario//events//ES"

var (
	propColor      = ical.ComponentProperty("COLOR")
	propWorkStatus = ical.ComponentProperty("X-WORK-STATUS")
	propCompany    = ical.ComponentProperty("X-COMPANY-ID")
)

// Build returns a calendar with one VEVENT per event. now stamps DTSTAMP.
func Build(name string, events []domain.Event, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if name != "" {
		cal.SetName(name)
	}

	for i := range events {
		addEvent(cal, &events[i], now.UTC())
	}
	return cal
}

// Write serializes Build's calendar to w.
func Write(w io.Writer, name string, events []domain.Event, now time.Time) error {
	return Build(name, events, now).SerializeTo(w)
}

func addEvent(cal *ical.Calendar, e *domain.Event, now time.Time) {
	ve := cal.AddEvent(e.ID)
	ve.SetDtStampTime(now)
	ve.SetCreatedTime(e.CreatedAt.UTC())
	ve.SetModifiedAt(e.UpdatedAt.UTC())
	ve.SetSummary(e.Title)

	if e.AllDay {
		end := e.EndDate
		// DTEND is exclusive for all-day entries.
		if !end.After(e.StartDate) || sameDay(end, e.StartDate) {
			end = e.StartDate.AddDate(0, 0, 1)
		}
		ve.SetAllDayStartAt(e.StartDate)
		ve.SetAllDayEndAt(end)
	} else {
		ve.SetStartAt(e.StartDate.UTC())
		ve.SetEndAt(e.EndDate.UTC())
	}

	if e.Description != nil {
		ve.SetDescription(*e.Description)
	}
	if e.Location != nil {
		ve.SetLocation(*e.Location)
	}
	ve.AddProperty(ical.ComponentPropertyCategories, e.Category)
	ve.AddProperty(propColor, e.Color)

	if w := e.Work(); w != nil {
		ve.AddProperty(propWorkStatus, string(w.Status))
		ve.AddProperty(propCompany, w.CompanyID)
	}

	if e.Reminder != nil {
		alarm := ve.AddAlarm()
		alarm.SetAction(ical.ActionDisplay)
		alarm.SetTrigger(trigger(e.StartDate.Sub(*e.Reminder)))
		alarm.AddProperty(ical.ComponentPropertyDescription, e.Title)
	}
}

// trigger renders an offset relative to DTSTART; lead is how long before
// the start the alarm fires.
func trigger(lead time.Duration) string {
	minutes := int64(lead / time.Minute)
	if minutes >= 0 {
		return fmt.Sprintf("-PT%dM", minutes)
	}
	return fmt.Sprintf("PT%dM", -minutes)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

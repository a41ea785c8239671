// Package ics выгружает события в формат iCalendar.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/timeslot"
)

const (
	productID = "-//household_bot//schedules//RU"
	calName   = "Household schedules"
)

// EventUID стабильный UID события: одинаков при каждой выгрузке
func EventUID(id int64) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("household-schedule-%d", id))).String()
}

// uidFor UID по ID; у несохранённого события (ID 0) - по названию и началу
func uidFor(e model.Event) string {
	if e.ID != 0 {
		return EventUID(e.ID)
	}
	key := fmt.Sprintf("household-draft-%s-%s", e.Title, e.StartTime.UTC().Format(time.RFC3339))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

// Export собирает VCALENDAR. События без начала пропускаются,
// отсутствующий конец считается как start+60m (timeslot.DefaultDuration).
func Export(events []model.Event, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(calName)

	for _, e := range events {
		if !e.HasStart() {
			continue
		}

		ve := cal.AddEvent(uidFor(e))
		ve.SetDtStampTime(now)
		ve.SetStartAt(e.StartTime)
		ve.SetEndAt(timeslot.ReconcileEnd(e.StartTime, e.EndTime))
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.CreatedAt != nil {
			ve.SetCreatedTime(*e.CreatedAt)
		}
		if e.UpdatedAt != nil {
			ve.SetModifiedAt(*e.UpdatedAt)
		}
	}

	return cal.Serialize()
}

package report

import (
	"strconv"
	"time"

	"parking-maintenance-backend/internal/model"
)

// Column is one table column: a header and how to read it from a record.
type Column[T any] struct {
	Name  string
	Value func(T) string
}

// Table is a rendered grid of string cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

func buildTable[T any](columns []Column[T], records []T) Table {
	t := Table{Columns: make([]string, len(columns)), Rows: make([][]string, 0, len(records))}
	for i, c := range columns {
		t.Columns[i] = c.Name
	}
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = c.Value(rec)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

const timestampLayout = "2006-01-02 15:04"

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func formatOptional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SessionColumns lists the parking session table columns in order.
var SessionColumns = []Column[model.ParkingSession]{
	{"sessionId", func(s model.ParkingSession) string { return formatID(s.SessionID) }},
	{"subscriberId", func(s model.ParkingSession) string { return formatID(s.SubscriberID) }},
	{"spotId", func(s model.ParkingSession) string { return formatID(s.SpotID) }},
	{"parkingCode", func(s model.ParkingSession) string { return strconv.Itoa(s.ParkingCode) }},
	{"inTime", func(s model.ParkingSession) string { return s.InTime.Format(timestampLayout) }},
	{"outTime", func(s model.ParkingSession) string {
		if s.OutTime == nil {
			return ""
		}
		return s.OutTime.Format(timestampLayout)
	}},
	{"extended", func(s model.ParkingSession) string { return strconv.FormatBool(s.Extended) }},
	{"late", func(s model.ParkingSession) string { return strconv.FormatBool(s.Late) }},
	{"active", func(s model.ParkingSession) string { return strconv.FormatBool(s.Active) }},
}

// ReservationColumns lists the reservation table columns in order.
var ReservationColumns = []Column[model.Reservation]{
	{"id", func(r model.Reservation) string { return formatID(r.ID) }},
	{"subscriberId", func(r model.Reservation) string { return formatID(r.SubscriberID) }},
	{"spotId", func(r model.Reservation) string { return formatID(r.SpotID) }},
	{"date", func(r model.Reservation) string { return r.Date.Format(time.DateOnly) }},
	{"startTime", func(r model.Reservation) string { return formatOptional(r.StartTime) }},
	{"endTime", func(r model.Reservation) string { return formatOptional(r.EndTime) }},
	{"code", func(r model.Reservation) string { return strconv.Itoa(r.Code) }},
}

// SpotColumns lists the parking spot table columns in order.
var SpotColumns = []Column[model.ParkingSpot]{
	{"spotId", func(s model.ParkingSpot) string { return formatID(s.SpotID) }},
	{"status", func(s model.ParkingSpot) string { return string(s.Status) }},
}

// SubscriberColumns lists the subscriber table columns in order.
// loggedIn and history are left out of reports.
var SubscriberColumns = []Column[model.Subscriber]{
	{"id", func(s model.Subscriber) string { return formatID(s.ID) }},
	{"name", func(s model.Subscriber) string { return s.Name }},
	{"phone", func(s model.Subscriber) string { return s.Phone }},
	{"email", func(s model.Subscriber) string { return s.Email }},
	{"role", func(s model.Subscriber) string { return s.Role }},
}

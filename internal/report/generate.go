package report

import (
	"context"
	"log"
	"path/filepath"
	"time"
)

const (
	snapshotKind  = "SnapshotReport"
	monthlyTitle  = "Monthly Parking Report"
	snapshotTitle = "Parking Snapshot Report"
)

// Generator runs aggregate, assemble, persist and deliver for one period.
type Generator struct {
	src  Source
	pub  *Publisher
	kind string
	loc  *time.Location
	now  func() time.Time
}

// NewGenerator creates a generator for monthly reports of the given kind.
// Session days and generation timestamps are read in loc.
func NewGenerator(src Source, pub *Publisher, kind string, loc *time.Location) *Generator {
	if loc == nil {
		loc = time.Local
	}
	return &Generator{src: src, pub: pub, kind: kind, loc: loc, now: time.Now}
}

// Monthly builds the report for month p and returns its file name.
func (g *Generator) Monthly(ctx context.Context, p Period) (string, error) {
	return g.generate(ctx, g.kind, monthlyTitle, Period{Year: p.Year, Month: p.Month})
}

// Snapshot builds a month-to-date report keyed by day.
func (g *Generator) Snapshot(ctx context.Context, day time.Time) (string, error) {
	return g.generate(ctx, snapshotKind, snapshotTitle, DayOf(day.In(g.loc)))
}

func (g *Generator) generate(ctx context.Context, kind, title string, p Period) (string, error) {
	data, err := Aggregate(ctx, g.src, p, g.loc)
	if err != nil {
		return "", err
	}

	artifact := Assemble(data, kind, title, g.now().In(g.loc))
	path, err := g.pub.Persist(artifact)
	if err != nil {
		return "", err
	}
	name := filepath.Base(path)
	log.Printf("Report %s written (%d sessions, %d reservations)", name, data.TotalSessions(), len(data.Reservations))

	// The artifact stays downloadable when delivery fails.
	if err := g.pub.Deliver(ctx, artifact, path); err != nil {
		log.Printf("Error delivering report %s: %v", name, err)
	}
	return name, nil
}

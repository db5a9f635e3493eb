package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"parking-maintenance-backend/internal/parse"
	"parking-maintenance-backend/internal/transport"
)

// ErrNotFound is returned when a requested report artifact was never produced.
var ErrNotFound = errors.New("file not found")

// Renderer turns an artifact into a document.
type Renderer interface {
	Render(w io.Writer, a *Artifact) error
	// Ext is the file extension of the produced documents, without the dot.
	Ext() string
}

// RenderError reports that an artifact could not be rendered or persisted.
// No file is left behind when it is returned.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("report %s failed: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Entry describes a persisted report.
type Entry struct {
	Name    string    `json:"name"`
	Kind    string    `json:"kind"`
	Year    int       `json:"year"`
	Month   int       `json:"month"`
	Day     int       `json:"day,omitempty"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified"`
}

// Publisher writes rendered artifacts to the reports directory and hands
// them to the transport.
type Publisher struct {
	dir      string
	renderer Renderer
	sender   transport.Sender

	mu        sync.Mutex
	onPublish []func(name string)
}

// NewPublisher creates a publisher rooted at dir.
func NewPublisher(dir string, renderer Renderer, sender transport.Sender) *Publisher {
	return &Publisher{dir: dir, renderer: renderer, sender: sender}
}

// OnPublish registers fn to be called with the file name of every persisted report.
func (p *Publisher) OnPublish(fn func(name string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onPublish = append(p.onPublish, fn)
}

// Dir is the reports directory.
func (p *Publisher) Dir() string {
	return p.dir
}

// Persist renders a into the reports directory and returns the written path.
// The document is rendered to a temporary file first, so a reader never sees
// a partial report under the well-known name.
func (p *Publisher) Persist(a *Artifact) (string, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", &RenderError{Stage: "persist", Err: err}
	}

	name := a.FileName(p.renderer.Ext())
	tmp, err := os.CreateTemp(p.dir, "."+name+".*")
	if err != nil {
		return "", &RenderError{Stage: "persist", Err: err}
	}
	defer os.Remove(tmp.Name())

	if err := p.renderer.Render(tmp, a); err != nil {
		tmp.Close()
		return "", &RenderError{Stage: "render", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &RenderError{Stage: "persist", Err: err}
	}

	path := filepath.Join(p.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", &RenderError{Stage: "persist", Err: err}
	}

	p.mu.Lock()
	hooks := append([]func(string){}, p.onPublish...)
	p.mu.Unlock()
	for _, fn := range hooks {
		fn(name)
	}
	return path, nil
}

// Deliver packages the persisted file at path into a file-transfer envelope
// and hands it to the sender.
func (p *Publisher) Deliver(ctx context.Context, a *Artifact, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("deliver %s: %w", filepath.Base(path), err)
	}
	env := transport.NewFileTransfer(TransferTag(a.Kind, p.renderer.Ext()), filepath.Base(path), data)
	if err := p.sender.Send(ctx, env); err != nil {
		return fmt.Errorf("deliver %s: %w", filepath.Base(path), err)
	}
	return nil
}

// TransferTag is the envelope tag for a report kind, e.g. "MonthlyReportPDF".
func TransferTag(kind, ext string) string {
	return kind + strings.ToUpper(ext)
}

// Open loads a persisted report by file name and wraps it in a file-transfer
// envelope. Names that are not report names are treated as missing.
func (p *Publisher) Open(name string) (transport.Envelope, error) {
	rn, err := parse.ParseReportName(name)
	if err != nil {
		return transport.Envelope{}, ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(p.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return transport.Envelope{}, ErrNotFound
	}
	if err != nil {
		return transport.Envelope{}, err
	}
	return transport.NewFileTransfer(TransferTag(rn.Kind, rn.Ext), name, data), nil
}

// List returns every persisted report, newest period first.
// A missing reports directory is an empty listing.
func (p *Publisher) List() ([]Entry, error) {
	files, err := os.ReadDir(p.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	entries := []Entry{}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		rn, err := parse.ParseReportName(f.Name())
		if err != nil {
			continue
		}
		info, err := f.Info()
		if err != nil {
			log.Printf("Error reading report file info %s: %v", f.Name(), err)
			continue
		}
		entries = append(entries, Entry{
			Name:    f.Name(),
			Kind:    rn.Kind,
			Year:    rn.Year,
			Month:   int(rn.Month),
			Day:     rn.Day,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		if a.Day != b.Day {
			return a.Day > b.Day
		}
		return a.Name < b.Name
	})
	return entries, nil
}

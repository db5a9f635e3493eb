package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"parking-maintenance-backend/internal/model"
	"parking-maintenance-backend/internal/transport"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// ReportReady is the push payload announcing a published file. The file
// itself is too large for a push message and is fetched from URL.
type ReportReady struct {
	ID       string `json:"id"`
	Tag      string `json:"tag"`
	Filename string `json:"filename"`
	Size     int    `json:"size"`
	URL      string `json:"url"`
}

// SubscriptionStore is the part of the store the workers need.
type SubscriptionStore interface {
	PushSubscriptions(ctx context.Context) ([]model.PushSubscription, error)
	DeletePushSubscription(ctx context.Context, endpoint string) error
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan ReportReady
	store   SubscriptionStore
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, store SubscriptionStore, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan ReportReady, size), // Buffered channel
		store:   store,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case notice := <-wp.jobs:
			log.Printf("Worker %d announcing %s", id, notice.Filename)
			wp.notifyAll(ctx, notice)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Send implements transport.Sender. File transfers are announced to every
// admin subscription; other envelopes are ignored.
func (wp *WorkerPool) Send(ctx context.Context, env transport.Envelope) error {
	ft, ok := env.Payload.(transport.FileTransfer)
	if !ok {
		return fmt.Errorf("unsupported envelope %q", env.Tag)
	}
	notice := ReportReady{
		ID:       env.ID,
		Tag:      env.Tag,
		Filename: ft.Filename,
		Size:     len(ft.Data),
		URL:      "/api/reports/" + ft.Filename,
	}
	select {
	case wp.jobs <- notice:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan ReportReady {
	return wp.jobs
}

// notifyAll fetches every subscription and pushes the notice to it.
func (wp *WorkerPool) notifyAll(ctx context.Context, notice ReportReady) {
	subscriptions, err := wp.store.PushSubscriptions(ctx)
	if err != nil {
		log.Printf("Error fetching push subscriptions for %s: %v", notice.Filename, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(notice)
	if err != nil {
		log.Printf("Error encoding notice for %s: %v", notice.Filename, err)
		return
	}

	log.Printf("Sending %d notifications for %s", len(subscriptions), notice.Filename)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.store.DeletePushSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}

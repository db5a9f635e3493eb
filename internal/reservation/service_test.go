package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-maintenance-backend/internal/model"
)

type mockCreator struct {
	CreateFunc func(ctx context.Context, r *model.Reservation) (int64, error)
	calls      int
}

func (m *mockCreator) CreateReservation(ctx context.Context, r *model.Reservation) (int64, error) {
	m.calls++
	return m.CreateFunc(ctx, r)
}

func TestService_Create(t *testing.T) {
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	t.Run("stores a valid reservation", func(t *testing.T) {
		creator := &mockCreator{CreateFunc: func(ctx context.Context, r *model.Reservation) (int64, error) {
			assert.Equal(t, int64(0), r.ID)
			assert.Equal(t, 123456, r.Code)
			assert.Equal(t, "10:00", *r.StartTime)
			return 17, nil
		}}
		svc := NewService(creator)
		svc.newCode = func() int { return 123456 }

		r, err := svc.Create(context.Background(), Request{
			SubscriberID: 5, SpotID: 2,
			Date:      time.Date(2024, time.March, 3, 15, 30, 0, 0, time.UTC),
			StartTime: "10:00", EndTime: "12:00",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, int64(17), r.ID)
		assert.Equal(t, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), r.Date)
		assert.Equal(t, "12:00", *r.EndTime)
	})

	t.Run("invalid request never reaches the store", func(t *testing.T) {
		creator := &mockCreator{}
		svc := NewService(creator)

		_, err := svc.Create(context.Background(), Request{Date: now, StartTime: "10:00", EndTime: "11:00"}, now)
		assert.ErrorIs(t, err, ErrTooSoon)
		assert.Equal(t, 0, creator.calls)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		dbErr := errors.New("insert failed")
		creator := &mockCreator{CreateFunc: func(ctx context.Context, r *model.Reservation) (int64, error) {
			return 0, dbErr
		}}
		svc := NewService(creator)

		_, err := svc.Create(context.Background(), Request{
			Date: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), StartTime: "10:00", EndTime: "11:00",
		}, now)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestService_DefaultCodeIsSixDigits(t *testing.T) {
	svc := NewService(&mockCreator{})
	for i := 0; i < 100; i++ {
		code := svc.newCode()
		assert.GreaterOrEqual(t, code, 100000)
		assert.LessOrEqual(t, code, 999999)
	}
}

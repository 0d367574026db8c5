package deadline_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/deadline"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestAddBusinessDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"monday plus one", monday, 1, monday.AddDate(0, 0, 1)},
		{"thursday plus two skips the weekend", monday.AddDate(0, 0, 3), 2, monday.AddDate(0, 0, 7)},
		{"friday plus one lands on monday", monday.AddDate(0, 0, 4), 1, monday.AddDate(0, 0, 7)},
		{"saturday plus one lands on monday", monday.AddDate(0, 0, 5), 1, monday.AddDate(0, 0, 7)},
		{"monday plus five is next monday", monday, 5, monday.AddDate(0, 0, 7)},
		{"zero keeps the date", monday.AddDate(0, 0, 5), 0, monday.AddDate(0, 0, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deadline.AddBusinessDays(tt.start, tt.n))
		})
	}
}

func TestAddBusinessDays_Properties(t *testing.T) {
	for offset := 0; offset < 14; offset++ {
		start := monday.AddDate(0, 0, offset)
		for n := 1; n <= 12; n++ {
			got := deadline.AddBusinessDays(start, n)

			require.True(t, deadline.IsBusinessDay(got), "start %s n %d", start.Weekday(), n)

			counted := 0
			for d := start.AddDate(0, 0, 1); !d.After(got); d = d.AddDate(0, 0, 1) {
				if deadline.IsBusinessDay(d) {
					counted++
				}
			}
			assert.Equal(t, n, counted, "start %s n %d", start.Weekday(), n)
		}
	}
}

func TestForStage(t *testing.T) {
	tests := []struct {
		stage     order.Status
		apostille bool
		want      time.Time
	}{
		{order.PendingSalesReview, false, monday.Add(6 * time.Hour)},
		{order.PendingOperation, false, monday.AddDate(0, 0, 3)},
		{order.PendingOperationManagerReview, false, monday.AddDate(0, 0, 4)},
		{order.AwaitingClientAcceptance, false, monday.AddDate(0, 0, 7)},
		{order.ShippingPreparation, true, monday.AddDate(0, 0, 9)},
		{order.ShippingPreparation, false, monday.AddDate(0, 0, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			got, ok := deadline.ForStage(tt.stage, monday, tt.apostille)

			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, s := range []order.Status{order.New, order.RejectedBySales, order.Completed} {
		_, ok := deadline.ForStage(s, monday, false)
		assert.False(t, ok, s.String())
	}
}

func TestClassify_SalesReviewScenario(t *testing.T) {
	due, ok := deadline.ForStage(order.PendingSalesReview, monday, false)
	require.True(t, ok)

	assert.Equal(t, deadline.OnTrack, deadline.Classify(monday, due))
	assert.Equal(t, deadline.Approaching, deadline.Classify(monday.Add(5*time.Hour+30*time.Minute), due))
	assert.Equal(t, deadline.Approaching, deadline.Classify(due, due))
	assert.Equal(t, deadline.Overdue, deadline.Classify(monday.Add(7*time.Hour), due))
}

func TestEvaluate(t *testing.T) {
	now := monday.Add(2 * time.Hour)

	ev, ok := deadline.Evaluate(order.PendingOperation, monday, false, now)

	require.True(t, ok)
	assert.Equal(t, order.PendingOperation, ev.Stage)
	assert.Equal(t, monday.AddDate(0, 0, 3), ev.DeadlineAt)
	assert.Equal(t, 3*24*time.Hour-2*time.Hour, ev.Remaining)
	assert.Equal(t, deadline.OnTrack, ev.State)
	assert.Equal(t, "on_track", ev.State.String())

	_, ok = deadline.Evaluate(order.Completed, monday, false, now)
	assert.False(t, ok)
}

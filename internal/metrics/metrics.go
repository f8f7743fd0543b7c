package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type Metrics struct {
	usersRegistered   metric.Int64Counter
	loginsSucceeded   metric.Int64Counter
	tablesViewed      metric.Int64Counter
	lessonsViewed     metric.Int64Counter
	enrollmentsViewed metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.usersRegistered, err = meter.Int64Counter(
		"course_service.users.registered",
		metric.WithDescription("Total number of users registered"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return nil, err
	}

	m.loginsSucceeded, err = meter.Int64Counter(
		"course_service.logins.succeeded",
		metric.WithDescription("Total number of successful logins"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	m.tablesViewed, err = meter.Int64Counter(
		"course_service.tables.viewed",
		metric.WithDescription("Total number of table listings served"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.lessonsViewed, err = meter.Int64Counter(
		"course_service.lessons.viewed",
		metric.WithDescription("Total number of course lesson listings served"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.enrollmentsViewed, err = meter.Int64Counter(
		"course_service.enrollments.viewed",
		metric.WithDescription("Total number of user enrollment listings served"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// NewMock creates a no-op Metrics instance for testing
func NewMock() *Metrics {
	m, _ := New(noop.NewMeterProvider().Meter("test"))
	return m
}

func (m *Metrics) RecordUserRegistered(ctx context.Context) {
	if m != nil && m.usersRegistered != nil {
		m.usersRegistered.Add(ctx, 1)
	}
}

func (m *Metrics) RecordLoginSucceeded(ctx context.Context) {
	if m != nil && m.loginsSucceeded != nil {
		m.loginsSucceeded.Add(ctx, 1)
	}
}

func (m *Metrics) RecordTableViewed(ctx context.Context) {
	if m != nil && m.tablesViewed != nil {
		m.tablesViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordLessonsViewed(ctx context.Context) {
	if m != nil && m.lessonsViewed != nil {
		m.lessonsViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordEnrollmentsViewed(ctx context.Context) {
	if m != nil && m.enrollmentsViewed != nil {
		m.enrollmentsViewed.Add(ctx, 1)
	}
}

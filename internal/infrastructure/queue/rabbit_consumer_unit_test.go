//go:build unit
// +build unit

package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/pkg/testutil"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *recordingAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func testDelivery(t *testing.T, redelivered bool) (amqp.Delivery, *recordingAcknowledger) {
	t.Helper()

	body, err := json.Marshal(analyses.AnalysisRequest{
		PlanID:    7,
		UserID:    "subject-1",
		ObjectKey: "uploads/plan.pdf",
	})
	require.NoError(t, err)

	ack := &recordingAcknowledger{}
	return amqp.Delivery{
		Acknowledger: ack,
		Body:         body,
		Redelivered:  redelivered,
	}, ack
}

func TestRabbitConsumer_Dispatch_Success(t *testing.T) {
	consumer := &RabbitConsumer{logger: testutil.SetupTestLogger(t)}
	delivery, ack := testDelivery(t, false)

	var handled analyses.AnalysisRequest
	consumer.dispatch(context.Background(), delivery, func(ctx context.Context, req analyses.AnalysisRequest) error {
		handled = req
		return nil
	})

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	assert.Equal(t, 7, handled.PlanID)
	assert.Equal(t, "uploads/plan.pdf", handled.ObjectKey)
}

func TestRabbitConsumer_Dispatch_HandlerErrorRequeuesFirstDelivery(t *testing.T) {
	consumer := &RabbitConsumer{logger: testutil.SetupTestLogger(t)}
	delivery, ack := testDelivery(t, false)

	consumer.dispatch(context.Background(), delivery, func(ctx context.Context, req analyses.AnalysisRequest) error {
		return assert.AnError
	})

	assert.False(t, ack.acked)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
}

func TestRabbitConsumer_Dispatch_HandlerErrorDropsRedelivery(t *testing.T) {
	consumer := &RabbitConsumer{logger: testutil.SetupTestLogger(t)}
	delivery, ack := testDelivery(t, true)

	consumer.dispatch(context.Background(), delivery, func(ctx context.Context, req analyses.AnalysisRequest) error {
		return assert.AnError
	})

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestRabbitConsumer_Dispatch_MalformedPayloadDropped(t *testing.T) {
	consumer := &RabbitConsumer{logger: testutil.SetupTestLogger(t)}

	ack := &recordingAcknowledger{}
	delivery := amqp.Delivery{Acknowledger: ack, Body: []byte("not json")}

	called := false
	consumer.dispatch(context.Background(), delivery, func(ctx context.Context, req analyses.AnalysisRequest) error {
		called = true
		return nil
	})

	assert.False(t, called)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

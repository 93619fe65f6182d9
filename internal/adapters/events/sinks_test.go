package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsevents "github.com/SscSPs/vendor_invoicing/internal/core/ports/events"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleEvent() domain.WorkflowEvent {
	paymentID := "pay_1"
	return domain.WorkflowEvent{
		EventID:    "evt_1",
		EventType:  domain.EventInvoicePaid,
		InvoiceID:  "inv_1",
		PaymentID:  &paymentID,
		ActorID:    "acct_1",
		ActorRole:  domain.RoleAccountant,
		Command:    "record_payment",
		FromStatus: domain.StatusSubmittedToAccounting,
		ToStatus:   domain.StatusPaid,
		Timestamp:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Payload:    map[string]any{"amount": "150.00"},
	}
}

func TestKafkaSink_Record(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "inv_1" {
			return errors.New("message must be keyed by invoice id")
		}
		if msg.Topic != "invoice.workflow" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var decoded domain.WorkflowEvent
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		if decoded.EventType != domain.EventInvoicePaid {
			return errors.New("unexpected event type")
		}
		return nil
	})

	sink := NewKafkaSink(producer, "invoice.workflow")
	require.NoError(t, sink.Record(context.Background(), sampleEvent()))
	require.NoError(t, sink.Close())
}

func TestKafkaSink_RecordFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	sink := NewKafkaSink(producer, "invoice.workflow")
	err := sink.Record(context.Background(), sampleEvent())

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, sink.Close())
}

type mockStreamAdder struct {
	mock.Mock
}

func (m *mockStreamAdder) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	args := m.Called(ctx, a)
	return redis.NewStringResult(args.String(0), args.Error(1))
}

func TestRedisStreamSink_Record(t *testing.T) {
	client := new(mockStreamAdder)
	client.On("XAdd", mock.Anything, mock.MatchedBy(func(a *redis.XAddArgs) bool {
		values, ok := a.Values.(map[string]any)
		return ok &&
			a.Stream == "invoice-workflow" &&
			a.Approx &&
			values["invoice_id"] == "inv_1" &&
			values["event_type"] == string(domain.EventInvoicePaid)
	})).Return("1717243200000-0", nil).Once()

	sink := NewRedisStreamSink(client, "invoice-workflow")
	require.NoError(t, sink.Record(context.Background(), sampleEvent()))
	client.AssertExpectations(t)
}

func TestRedisStreamSink_RecordFailure(t *testing.T) {
	client := new(mockStreamAdder)
	client.On("XAdd", mock.Anything, mock.Anything).Return("", redis.ErrClosed).Once()

	sink := NewRedisStreamSink(client, "invoice-workflow")
	err := sink.Record(context.Background(), sampleEvent())

	assert.ErrorIs(t, err, redis.ErrClosed)
}

func TestLogSink_Record(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, sink.Record(context.Background(), sampleEvent()))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Workflow event", line["msg"])
	assert.Equal(t, "InvoicePaid", line["event_type"])
	assert.Equal(t, "pay_1", line["payment_id"])
	assert.Equal(t, "workflow_events", line["component"])
}

func TestMultiSink_DeliversToAllAndJoinsErrors(t *testing.T) {
	var delivered []string
	ok := portsevents.SinkFunc(func(_ context.Context, e domain.WorkflowEvent) error {
		delivered = append(delivered, "ok:"+e.EventID)
		return nil
	})
	errA := errors.New("a down")
	errB := errors.New("b down")
	failA := portsevents.SinkFunc(func(context.Context, domain.WorkflowEvent) error { return errA })
	failB := portsevents.SinkFunc(func(context.Context, domain.WorkflowEvent) error { return errB })

	sink := NewMultiSink(failA, ok, failB)
	err := sink.Record(context.Background(), sampleEvent())

	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, []string{"ok:evt_1"}, delivered)
	assert.Equal(t, 3, sink.Len())

	assert.NoError(t, NewMultiSink(ok).Record(context.Background(), sampleEvent()))
	assert.NoError(t, NewMultiSink().Record(context.Background(), sampleEvent()))
}

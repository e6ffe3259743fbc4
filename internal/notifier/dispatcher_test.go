package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marketscanner/internal/model"
	"marketscanner/internal/recorder"
)

type fakeSender struct {
	messages []string
	err      error
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string) error {
	f.messages = append(f.messages, text)
	return f.err
}

func signal(symbol string, c model.Classification) model.Signal {
	return model.Signal{
		Symbol:         symbol,
		Price:          100,
		Classification: c,
		Confidence:     0.75,
		At:             time.Now(),
	}
}

func TestDispatcher_FirstObservationIsSilent(t *testing.T) {
	fs := &fakeSender{}
	d := NewDispatcher(fs, recorder.NewNoop(), zap.NewNop())

	events := d.Dispatch(context.Background(), []model.Signal{signal("BTCUSDT", model.ClassificationBuy)})
	assert.Empty(t, events)
	assert.Empty(t, fs.messages)
}

func TestDispatcher_AlertsOnChange(t *testing.T) {
	fs := &fakeSender{}
	d := NewDispatcher(fs, recorder.NewNoop(), zap.NewNop())
	ctx := context.Background()

	d.Dispatch(ctx, []model.Signal{signal("BTCUSDT", model.ClassificationHold)})
	events := d.Dispatch(ctx, []model.Signal{signal("BTCUSDT", model.ClassificationBuy)})

	require.Len(t, events, 1)
	assert.Equal(t, model.ClassificationHold, events[0].Previous)
	assert.Equal(t, model.ClassificationBuy, events[0].Current)
	assert.NotEmpty(t, events[0].ID)

	require.Len(t, fs.messages, 1)
	assert.Contains(t, fs.messages[0], "BTCUSDT")
	assert.Contains(t, fs.messages[0], "HOLD")
	assert.Contains(t, fs.messages[0], "BUY")
}

func TestDispatcher_NoAlertWhenUnchanged(t *testing.T) {
	fs := &fakeSender{}
	d := NewDispatcher(fs, recorder.NewNoop(), zap.NewNop())
	ctx := context.Background()

	d.Dispatch(ctx, []model.Signal{signal("AOT", model.ClassificationSell)})
	events := d.Dispatch(ctx, []model.Signal{signal("AOT", model.ClassificationSell)})

	assert.Empty(t, events)
	assert.Empty(t, fs.messages)
}

func TestDispatcher_TracksSymbolsIndependently(t *testing.T) {
	fs := &fakeSender{}
	d := NewDispatcher(fs, recorder.NewNoop(), zap.NewNop())
	ctx := context.Background()

	d.Dispatch(ctx, []model.Signal{
		signal("BTCUSDT", model.ClassificationHold),
		signal("ETHUSDT", model.ClassificationHold),
	})
	events := d.Dispatch(ctx, []model.Signal{
		signal("BTCUSDT", model.ClassificationBuy),
		signal("ETHUSDT", model.ClassificationHold),
	})

	require.Len(t, events, 1)
	assert.Equal(t, "BTCUSDT", events[0].Symbol)
}

func TestDispatcher_NilSenderStillRecords(t *testing.T) {
	d := NewDispatcher(nil, recorder.NewNoop(), zap.NewNop())
	ctx := context.Background()

	d.Dispatch(ctx, []model.Signal{signal("PTT", model.ClassificationHold)})
	events := d.Dispatch(ctx, []model.Signal{signal("PTT", model.ClassificationSell)})
	require.Len(t, events, 1)
}

package planner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketscanner/internal/model"
)

func goal(capital, profit, entry string) model.GoalParams {
	return model.GoalParams{
		Capital:      decimal.RequireFromString(capital),
		TargetProfit: decimal.RequireFromString(profit),
		TargetEntry:  decimal.RequireFromString(entry),
	}
}

func wavyCloses(n int) []float64 {
	closes := make([]float64, n)
	p := 100.0
	for i := range closes {
		if i%2 == 0 {
			p *= 1.015
		} else {
			p *= 0.99
		}
		closes[i] = p
	}
	return closes
}

func TestBuildEntryAlert(t *testing.T) {
	p := New(14)
	closes := wavyCloses(60)

	alert, err := p.BuildEntryAlert("BTCUSDT", 100, closes, goal("1000", "200", "90"))
	require.NoError(t, err)

	// 1000 capital at entry 90 buys 11.11... units.
	units, _ := alert.Units.Float64()
	assert.InDelta(t, 1000.0/90.0, units, 1e-9)

	// Exit must bank 200 profit on 1000 capital: entry * 1.2.
	exit, _ := alert.ExitPrice.Float64()
	assert.InDelta(t, 108.0, exit, 1e-9)

	gap, _ := alert.GapPercent.Float64()
	assert.InDelta(t, 10.0, gap, 1e-9)

	assert.False(t, alert.Triggered)
	assert.Equal(t, 14, alert.HorizonDays)
	assert.GreaterOrEqual(t, alert.Probability, 0.0)
	assert.LessOrEqual(t, alert.Probability, 0.95)
	assert.GreaterOrEqual(t, alert.Patience, 0.0)
	assert.LessOrEqual(t, alert.Patience, 1.0)
}

func TestBuildEntryAlert_Triggered(t *testing.T) {
	p := New(14)

	alert, err := p.BuildEntryAlert("PTT", 85, wavyCloses(60), goal("5000", "500", "90"))
	require.NoError(t, err)

	assert.True(t, alert.Triggered, "price at or below target entry triggers the alert")
	assert.Equal(t, 0.0, alert.Patience, "a live entry needs no patience")
}

func TestBuildEntryAlert_Validation(t *testing.T) {
	p := New(14)
	closes := wavyCloses(60)

	tests := []struct {
		name  string
		price float64
		goal  model.GoalParams
	}{
		{"zero capital", 100, goal("0", "10", "90")},
		{"negative capital", 100, goal("-5", "10", "90")},
		{"zero entry", 100, goal("1000", "10", "0")},
		{"negative profit", 100, goal("1000", "-10", "90")},
		{"zero price", 0, goal("1000", "10", "90")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.BuildEntryAlert("X", tt.price, closes, tt.goal)
			assert.Error(t, err)
		})
	}
}

func TestNew_DefaultHorizon(t *testing.T) {
	assert.Equal(t, 14, New(0).HorizonDays)
	assert.Equal(t, 30, New(30).HorizonDays)
}

func TestPatienceMeter(t *testing.T) {
	assert.Equal(t, 0.0, PatienceMeter(50, 0.1, true), "triggered entries never wait")
	assert.Equal(t, 0.0, PatienceMeter(0, 0.5, false))
	assert.Equal(t, 1.0, PatienceMeter(50, 0.0, false), "clamped at 1")

	// A likelier entry asks for less patience at the same gap.
	assert.Less(t, PatienceMeter(5, 0.8, false), PatienceMeter(5, 0.2, false))

	// Sign of the gap does not matter.
	assert.Equal(t, PatienceMeter(5, 0.5, false), PatienceMeter(-5, 0.5, false))
}

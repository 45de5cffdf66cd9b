package calc

import (
	"math"
	"testing"
)

func TestMonthlyRate(t *testing.T) {
	tests := []struct {
		name   string
		annual float64
		want   float64
	}{
		{"zero", 0, 0},
		{"twelve percent", 12, 0.01},
		{"twenty four percent", 24, 0.02},
		{"typical card rate", 19.99, 19.99 / 100 / 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyRate(tt.annual)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MonthlyRate(%v) = %v, want %v", tt.annual, got, tt.want)
			}
		})
	}
}

func TestInterestForPeriod(t *testing.T) {
	// 1200 at 12% APR accrues exactly 12 in one month.
	got := InterestForPeriod(1200, 12)
	if math.Abs(got-12) > 1e-9 {
		t.Errorf("InterestForPeriod(1200, 12) = %v, want 12", got)
	}

	if got := InterestForPeriod(0, 20); got != 0 {
		t.Errorf("zero balance should accrue no interest, got %v", got)
	}
}

func TestPrincipalFromPayment(t *testing.T) {
	t.Run("payment covers interest", func(t *testing.T) {
		if got := PrincipalFromPayment(100, 30); got != 70 {
			t.Errorf("expected 70 principal, got %v", got)
		}
	})

	t.Run("payment below interest contributes zero principal", func(t *testing.T) {
		if got := PrincipalFromPayment(20, 30); got != 0 {
			t.Errorf("expected 0 principal, got %v", got)
		}
	})

	t.Run("payment equal to interest", func(t *testing.T) {
		if got := PrincipalFromPayment(30, 30); got != 0 {
			t.Errorf("expected 0 principal, got %v", got)
		}
	})
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.004, 1.0},
		{1.006, 1.01},
		{0, 0},
		{-2.674, -2.67},
		{123.456, 123.46},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

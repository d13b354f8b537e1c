// Package store persists evaluation and strike-selection history.
package store

import (
	"context"
	"time"
)

// EvaluationStore defines the interface for the evaluation journal.
type EvaluationStore interface {
	// Evaluations
	SaveEvaluation(ctx context.Context, rec *EvaluationRecord) error
	GetEvaluations(ctx context.Context, filter EvaluationFilter) ([]EvaluationRecord, error)
	GetEvaluationByID(ctx context.Context, id string) (*EvaluationRecord, error)

	// Strike selections
	SaveSelection(ctx context.Context, rec *SelectionRecord) error
	GetSelections(ctx context.Context, filter SelectionFilter) ([]SelectionRecord, error)

	// Lifecycle
	Close() error
}

// EvaluationRecord is one journaled payoff evaluation. The csv tags
// drive the history export.
type EvaluationRecord struct {
	ID         string    `json:"id" csv:"id"`
	Timestamp  time.Time `json:"timestamp" csv:"timestamp"`
	Symbol     string    `json:"symbol" csv:"symbol"`
	Strategy   string    `json:"strategy" csv:"strategy"`
	Method     string    `json:"method" csv:"method"` // scan, formula
	Lots       int       `json:"lots" csv:"lots"`
	LotSize    int       `json:"lot_size" csv:"lot_size"`
	Spot       float64   `json:"spot" csv:"spot"`
	MaxProfit  string    `json:"max_profit" csv:"max_profit"`
	MaxLoss    string    `json:"max_loss" csv:"max_loss"`
	Breakeven  string    `json:"breakeven" csv:"breakeven"`
	RiskReward string    `json:"risk_reward" csv:"risk_reward"`
	ParamsJSON string    `json:"params" csv:"-"`
	ResultJSON string    `json:"result" csv:"-"`
}

// SelectionRecord is one journaled strike selection.
type SelectionRecord struct {
	ID           string    `json:"id" csv:"id"`
	Timestamp    time.Time `json:"timestamp" csv:"timestamp"`
	Symbol       string    `json:"symbol" csv:"symbol"`
	Spot         float64   `json:"spot" csv:"spot"`
	Expiry       time.Time `json:"expiry" csv:"expiry"`
	SellPut      float64   `json:"sell_put" csv:"sell_put"`
	BuyPut       float64   `json:"buy_put" csv:"buy_put"`
	SellCall     float64   `json:"sell_call" csv:"sell_call"`
	BuyCall      float64   `json:"buy_call" csv:"buy_call"`
	ExpectedMove float64   `json:"expected_move" csv:"expected_move"`
	Interval     float64   `json:"interval" csv:"interval"`
	Crossed      bool      `json:"crossed" csv:"crossed"`
}

// EvaluationFilter represents filters for querying evaluations.
type EvaluationFilter struct {
	Symbol    string
	Strategy  string
	Method    string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

// SelectionFilter represents filters for querying strike selections.
type SelectionFilter struct {
	Symbol    string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

package dashboard

import (
	"context"
	"fmt"

	"github.com/okian/studyscore/pkg/errkind"
	"github.com/okian/studyscore/pkg/logger"
	"github.com/okian/studyscore/pkg/metrics"
)

// Panel messages.
const (
	MsgPerformanceLoading = "Loading performance data..."
	MsgPerformanceFailed  = "Failed to load performance data."
)

// MetricCard is one labelled figure of the performance panel.
type MetricCard struct {
	Label string
	Value string
	Hint  string
}

// PanelView is the performance panel container.
type PanelView interface {
	ShowLoading(msg string)
	ShowCards(cards []MetricCard)
	ShowError(msg string)
}

// PerformancePanel renders the precomputed metrics of one model.
type PerformancePanel struct {
	api   API
	log   logger.Logger
	state stateCell
}

// NewPerformancePanel returns a panel reading from api.
func NewPerformancePanel(api API, opts ...Option) *PerformancePanel {
	o := applyOptions(opts)
	return &PerformancePanel{
		api:   api,
		log:   o.log.Named("performance"),
		state: newStateCell("performance"),
	}
}

// State returns the state of the latest request.
func (p *PerformancePanel) State() State { return p.state.get() }

// Show fetches the report and renders the cards for modelType. Fetch
// failures and model types missing from the report render MsgPerformanceFailed.
func (p *PerformancePanel) Show(ctx context.Context, modelType string, view PanelView) ([]MetricCard, error) {
	p.state.set(StateLoading)
	view.ShowLoading(MsgPerformanceLoading)

	cards, err := p.cards(ctx, modelType)
	if err != nil {
		p.state.set(StateError)
		p.log.Warn(ctx, "performance panel failed",
			logger.String("model_type", modelType),
			logger.Error(err))
		metrics.RecordErrorByType("performance", "warning")
		view.ShowError(MsgPerformanceFailed)
		return nil, err
	}

	p.state.set(StateSuccess)
	view.ShowCards(cards)
	return cards, nil
}

func (p *PerformancePanel) cards(ctx context.Context, modelType string) ([]MetricCard, error) {
	report, err := p.api.Performance(ctx)
	if err != nil {
		return nil, classify("dashboard.fetch_performance", err)
	}
	m, ok := report[modelType]
	if !ok {
		return nil, errkind.Wrap("dashboard.lookup_model", ErrUnknownModel, fmt.Errorf("%q", modelType))
	}
	return []MetricCard{
		{Label: "Model Type", Value: DisplayName(modelType) + " Regression"},
		{Label: "R² Score", Value: fmt.Sprintf("%.4f", m.R2), Hint: "Higher is better (0-1)"},
		{Label: "Mean Squared Error", Value: fmt.Sprintf("%.2f", m.MSE), Hint: "Lower is better (0-∞)"},
	}, nil
}

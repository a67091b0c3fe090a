// Package dashboard holds the UI controller: the prediction form, the
// dataset chart and the model performance panel.
package dashboard

import (
	"context"
	"errors"

	"github.com/okian/studyscore/internal/adapters/http/client"
	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/errkind"
)

// API is the subset of the prediction API the dashboard uses.
// *client.Client satisfies it.
type API interface {
	Predict(ctx context.Context, req model.PredictionRequest, modelType string) (model.PredictionResponse, error)
	Dataset(ctx context.Context) ([]model.DataRow, error)
	RegressionCurve(ctx context.Context, modelType string) ([]model.Point, error)
	Performance(ctx context.Context) (model.PerformanceReport, error)
}

var _ API = (*client.Client)(nil)

// classify maps an API error to ErrRequest when the server answered with a
// non-success status and to ErrConnectivity otherwise.
func classify(op string, err error) error {
	var rerr *client.RequestError
	if errors.As(err, &rerr) {
		return errkind.Wrap(op, ErrRequest, err)
	}
	return errkind.Wrap(op, ErrConnectivity, err)
}

package detect

import (
	"context"
	"fmt"

	"CaneGuard/internal/domain/models"
	domsvc "CaneGuard/internal/domain/service"
	"CaneGuard/pkg/config"
)

// HTTPTabularScorer calls the questionnaire model runtime over HTTP.
type HTTPTabularScorer struct{ base *HTTPServiceBase }

func NewHTTPTabularScorer(cfg *config.Config) *HTTPTabularScorer {
	return &HTTPTabularScorer{base: NewHTTPServiceBase(cfg)}
}

type tabularReq struct {
	Features []float64 `json:"features"`
}

type tabularResp struct {
	Probability float64 `json:"probability"`
}

func (s *HTTPTabularScorer) Probability(ctx context.Context, disease models.Disease, features []float64) (float64, error) {
	var tr tabularResp
	path := fmt.Sprintf("/tabular/%s/predict", disease)
	if err := s.base.PostJSON(ctx, path, tabularReq{Features: features}, &tr); err != nil {
		return 0, fmt.Errorf("tabular predict: %w", err)
	}
	return tr.Probability, nil
}

var _ domsvc.TabularScorer = (*HTTPTabularScorer)(nil)

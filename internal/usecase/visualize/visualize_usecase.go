package visualize

import (
	"context"
	"fmt"
	"time"

	"github.com/skillsage/skillsage-backend/internal/domain"
)

// Diagrammer turns prose into a Mermaid diagram definition. The
// production implementation is the Gemini client.
type Diagrammer interface {
	VisualizeContent(ctx context.Context, content string) (string, error)
}

type VisualizeUseCase struct {
	diagrammer Diagrammer
	genTimeout time.Duration
}

func NewVisualizeUseCase(diagrammer Diagrammer, genTimeout time.Duration) *VisualizeUseCase {
	return &VisualizeUseCase{
		diagrammer: diagrammer,
		genTimeout: genTimeout,
	}
}

// VisualizeRequest carries the learning content to diagram.
type VisualizeRequest struct {
	Content string `json:"content" binding:"required"`
}

// VisualizeResponse carries a rendered-ready Mermaid definition.
type VisualizeResponse struct {
	Type  string `json:"type"`
	Chart string `json:"chart"`
}

// Visualize asks the model for a Mermaid rendering of the content.
// There is no degraded fallback: without the model there is no diagram.
func (uc *VisualizeUseCase) Visualize(ctx context.Context, req *VisualizeRequest) (*VisualizeResponse, error) {
	if uc.diagrammer == nil {
		return nil, domain.ErrAIUnavailable
	}

	genCtx, cancel := context.WithTimeout(ctx, uc.genTimeout)
	defer cancel()

	chart, err := uc.diagrammer.VisualizeContent(genCtx, req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to generate diagram: %w", err)
	}

	return &VisualizeResponse{Type: "mermaid", Chart: chart}, nil
}

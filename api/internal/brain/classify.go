package brain

import (
	"context"

	"civic-brain/api/internal/types"
)

type classificationReply struct {
	TopLabel *string            `json:"top_label"`
	Scores   map[string]float64 `json:"scores"`
}

// Classify scores text against labels. The reply always carries every
// normalised label and nothing else.
func (b *Brain) Classify(ctx context.Context, in types.ClassificationRequest) types.ClassificationResponse {
	labels := normalizeLabels(in.Labels)

	instruction, err := b.prompts.Classify(in.Text, labels, in.MultiLabel)
	if err != nil {
		b.log.Error("classification prompt", "error", err)
		return b.classificationFallback(labels)
	}

	res := ask[classificationReply](ctx, b.engine, instruction, b.schemas.classify)
	if res.kind != outcomeOK {
		b.log.Warn("classification fallback", "outcome", res.kind.String(), "error", res.err)
		return b.classificationFallback(labels)
	}
	return b.shapeClassification(labels, res.reply)
}

func (b *Brain) shapeClassification(labels []string, r classificationReply) types.ClassificationResponse {
	scores := make(map[string]float64, len(labels))
	for _, l := range labels {
		scores[l] = 0.0
	}
	for k, v := range r.Scores {
		if l, ok := canonicalLabel(labels, k); ok {
			scores[l] = v
		}
	}

	top := firstOrUnknown(labels)
	if r.TopLabel != nil {
		if l, ok := canonicalLabel(labels, *r.TopLabel); ok {
			top = l
		}
	}

	return types.ClassificationResponse{
		TopLabel:  top,
		Scores:    scores,
		ModelName: b.ModelName(),
	}
}

func (b *Brain) classificationFallback(labels []string) types.ClassificationResponse {
	scores := make(map[string]float64, len(labels))
	for _, l := range labels {
		scores[l] = 0.0
	}
	return types.ClassificationResponse{
		TopLabel:  firstOrUnknown(labels),
		Scores:    scores,
		ModelName: b.ModelName(),
	}
}

package brain

import (
	"context"
	"strings"

	"civic-brain/api/internal/types"
	"civic-brain/api/internal/util"
)

type extractionReply struct {
	Category     *string  `json:"category"`
	Confidence   *float64 `json:"confidence"`
	Urgency      *string  `json:"urgency"`
	LocationHint *string  `json:"location_hint"`
	Summary      *string  `json:"summary"`
	Language     *string  `json:"language"`
}

// defaultConfidence applies when the model answered but left confidence out.
// A failed call reports 0.0 instead, so callers can tell "weak answer" from "no answer".
const defaultConfidence = 0.5

// Extract builds a complaint record from text. Each missing field gets its own default.
func (b *Brain) Extract(ctx context.Context, in types.ExtractionRequest) types.ExtractionResponse {
	labels := normalizeLabels(in.Labels)

	instruction, err := b.prompts.Extract(in.Text, labels)
	if err != nil {
		b.log.Error("extraction prompt", "error", err)
		return b.extractionFallback(in.Text, labels)
	}

	res := ask[extractionReply](ctx, b.engine, instruction, b.schemas.extract)
	if res.kind != outcomeOK {
		b.log.Warn("extraction fallback", "outcome", res.kind.String(), "error", res.err)
		return b.extractionFallback(in.Text, labels)
	}
	return b.shapeExtraction(in.Text, labels, res.reply)
}

func (b *Brain) shapeExtraction(text string, labels []string, r extractionReply) types.ExtractionResponse {
	out := types.ExtractionResponse{
		Category:   firstOrUnknown(labels),
		Confidence: defaultConfidence,
		Urgency:    types.UrgencyMedium,
		Summary:    util.TruncateRunes(text, types.SummaryMaxChars),
		ModelName:  b.ModelName(),
	}

	if c := trimmed(r.Category); c != "" {
		if l, ok := canonicalLabel(labels, c); ok {
			c = l
		}
		out.Category = c
	}
	if r.Confidence != nil {
		out.Confidence = *r.Confidence
	}
	if u := strings.ToLower(trimmed(r.Urgency)); types.ValidUrgency(u) {
		out.Urgency = u
	}
	if s := trimmed(r.Summary); s != "" {
		out.Summary = util.TruncateRunes(s, types.SummaryMaxChars)
	}
	if h := trimmed(r.LocationHint); h != "" {
		out.LocationHint = &h
	}
	if l := trimmed(r.Language); l != "" {
		out.Language = &l
	}
	return out
}

func (b *Brain) extractionFallback(text string, labels []string) types.ExtractionResponse {
	return types.ExtractionResponse{
		Category:   firstOrUnknown(labels),
		Confidence: 0.0,
		Urgency:    types.UrgencyMedium,
		Summary:    util.TruncateRunes(text, types.SummaryMaxChars),
		ModelName:  b.ModelName(),
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

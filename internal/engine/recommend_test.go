package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-bio/formulation-cli/internal/model"
)

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name           string
		design         model.Design
		wantCount      int
		wantSeverities []Severity
		wantContains   []string
	}{
		{
			name:           "all optimal",
			design:         model.Design{Size: 100, Charge: 5, Encapsulation: 90},
			wantCount:      1,
			wantSeverities: []Severity{SeverityPass},
			wantContains:   []string{"optimal ranges"},
		},
		{
			name:           "small size",
			design:         model.Design{Size: 50, Charge: 0, Encapsulation: 90},
			wantCount:      1,
			wantSeverities: []Severity{SeverityHigh},
			wantContains:   []string{"Increase size"},
		},
		{
			name:           "oversized",
			design:         model.Design{Size: 180, Charge: 0, Encapsulation: 90},
			wantCount:      1,
			wantSeverities: []Severity{SeverityHigh},
			wantContains:   []string{"Reduce size"},
		},
		{
			name:           "high charge",
			design:         model.Design{Size: 100, Charge: -25, Encapsulation: 90},
			wantCount:      1,
			wantSeverities: []Severity{SeverityHigh},
			wantContains:   []string{"Lower surface charge"},
		},
		{
			name:           "moderate charge",
			design:         model.Design{Size: 100, Charge: 12, Encapsulation: 90},
			wantCount:      1,
			wantSeverities: []Severity{SeverityMedium},
			wantContains:   []string{"Reduce charge"},
		},
		{
			name:           "low encapsulation",
			design:         model.Design{Size: 100, Charge: 0, Encapsulation: 60},
			wantCount:      1,
			wantSeverities: []Severity{SeverityHigh},
			wantContains:   []string{"Improve encapsulation"},
		},
		{
			name:           "mediocre encapsulation",
			design:         model.Design{Size: 100, Charge: 0, Encapsulation: 80},
			wantCount:      1,
			wantSeverities: []Severity{SeverityMedium},
			wantContains:   []string{"Aim for >85%"},
		},
		{
			name:           "all three out of range",
			design:         model.Design{Size: 60, Charge: 20, Encapsulation: 50},
			wantCount:      3,
			wantSeverities: []Severity{SeverityHigh, SeverityHigh, SeverityHigh},
			wantContains:   []string{"Increase size", "Lower surface charge", "Improve encapsulation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Recommendations(tt.design)
			require.Len(t, recs, tt.wantCount)
			for i, rec := range recs {
				assert.Equal(t, tt.wantSeverities[i], rec.Severity)
				assert.Contains(t, rec.Message, tt.wantContains[i])
			}
		})
	}
}

func TestRecommendationsSizeToleranceWiderThanScoringBand(t *testing.T) {
	// 120-150nm loses delivery score but triggers no size recommendation.
	d := model.Design{Size: 140, Charge: 0, Encapsulation: 90}

	assert.Less(t, sizeScore(d.Size), 100.0)

	recs := Recommendations(d)
	require.Len(t, recs, 1)
	assert.Equal(t, SeverityPass, recs[0].Severity)
}

func TestRecommendationsOnePerCategory(t *testing.T) {
	// A design triggering every category still yields at most one message
	// per category.
	d := model.Design{Size: 20, Charge: 40, Encapsulation: 10}
	recs := Recommendations(d)
	require.Len(t, recs, 3)

	var sizeMsgs, chargeMsgs, encapMsgs int
	for _, rec := range recs {
		switch {
		case strings.Contains(rec.Message, "size"):
			sizeMsgs++
		case strings.Contains(rec.Message, "charge"):
			chargeMsgs++
		case strings.Contains(rec.Message, "ncapsulation"):
			encapMsgs++
		}
	}
	assert.Equal(t, 1, sizeMsgs)
	assert.Equal(t, 1, chargeMsgs)
	assert.Equal(t, 1, encapMsgs)
}

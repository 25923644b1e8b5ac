package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// mockTripReportStore implements TripReportStore for testing
type mockTripReportStore struct {
	saved []json.RawMessage
}

func (m *mockTripReportStore) SaveTripReport(ctx context.Context, report json.RawMessage) (*model.UpsertResult, error) {
	m.saved = append(m.saved, report)
	return &model.UpsertResult{}, nil
}

func testCatalog() map[string]model.Property {
	return map[string]model.Property{
		"prop-africa-lux": {
			ID: "prop-africa-lux", Name: "Sasaab",
			CoreDestinationName: "Africa", PropertyType: "luxury accommodation",
		},
		"prop-africa-std": {
			ID: "prop-africa-std", Name: "Acacia Camp",
			CoreDestinationName: "Africa", PropertyType: "standard accommodation",
		},
		"prop-africa-city": {
			ID: "prop-africa-city", Name: "Nairobi Serena",
			CoreDestinationName: "Africa", PropertyType: "city hotel",
		},
		"prop-ship": {
			ID: "prop-ship", Name: "MS Zambezi Queen",
			CoreDestinationName: "Ship", PropertyType: "luxury accommodation",
		},
	}
}

func TestHasAnimals(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name    string
		segment PropertySegment
		want    bool
	}{
		{"new property always shows animal fields", PropertySegment{NewProperty: &NewSegmentProperty{Name: "X"}}, true},
		{"african luxury accommodation", PropertySegment{PropertyID: "prop-africa-lux"}, true},
		{"african standard accommodation", PropertySegment{PropertyID: "prop-africa-std"}, true},
		{"african city hotel", PropertySegment{PropertyID: "prop-africa-city"}, false},
		{"luxury accommodation on a ship", PropertySegment{PropertyID: "prop-ship"}, false},
		{"unknown catalog id", PropertySegment{PropertyID: "missing"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAnimals(tt.segment, catalog))
		})
	}
}

func validReport() *TripReport {
	return &TripReport{
		Travelers: []string{"amy@example.com"},
		Properties: []PropertySegment{
			{
				PropertyID: "prop-africa-lux",
				DateIn:     "2024-01-01",
				DateOut:    "2024-01-04",
				Ratings: SegmentRatings{
					Accommodation: Rating{Value: 9},
					Service:       Rating{Value: 8},
					Food:          Rating{Value: 7},
					Guide:         Rating{Value: 10},
					Overall:       Rating{Value: 9},
				},
				Comments: SegmentComments{Wildlife: "Leopard on day two", General: "Would return"},
			},
		},
		Activities: []ActivitySegment{
			{Name: "Talisman", Type: ActivityTypeRestaurant, Location: "Nairobi", Rating: Rating{Value: 8}},
		},
	}
}

func TestValidateTripReport(t *testing.T) {
	t.Run("valid report", func(t *testing.T) {
		assert.True(t, ValidateTripReport(validReport()).OK())
	})

	t.Run("needs travelers and properties", func(t *testing.T) {
		errs := ValidateTripReport(&TripReport{})
		assert.NotEmpty(t, errs["travelers"])
		assert.NotEmpty(t, errs["properties"])
	})

	t.Run("site inspection needs a visit date only", func(t *testing.T) {
		report := validReport()
		report.Properties[0].SiteInspectionOnly = true
		report.Properties[0].DateIn = ""
		report.Properties[0].DateOut = ""

		errs := ValidateTripReport(report)
		assert.NotEmpty(t, errs["properties[0].visit_date"])

		report.Properties[0].VisitDate = "2024-01-02"
		assert.True(t, ValidateTripReport(report).OK(), "checkout-dependent fields are suppressed")
	})

	t.Run("rating out of range", func(t *testing.T) {
		report := validReport()
		report.Properties[0].Ratings.Food = Rating{Value: 11}
		errs := ValidateTripReport(report)
		assert.NotEmpty(t, errs["properties[0].ratings.food"])
	})

	t.Run("activity type restricted", func(t *testing.T) {
		report := validReport()
		report.Activities[0].Type = "spa"
		errs := ValidateTripReport(report)
		assert.NotEmpty(t, errs["activities[0].type"])
	})

	t.Run("segment needs a property", func(t *testing.T) {
		report := validReport()
		report.Properties[0].PropertyID = ""
		errs := ValidateTripReport(report)
		assert.NotEmpty(t, errs["properties[0].property"])
	})
}

func TestSuggestTravelers(t *testing.T) {
	users := []model.User{
		{ID: "u1", Email: "amy@example.com"},
		{ID: "u2", Email: "ben@example.com"},
		{ID: "u3", Email: "admin@safari-backoffice.test"},
		{ID: "u4", Email: "demo@safari-backoffice.test"},
	}

	t.Run("substring match", func(t *testing.T) {
		got := SuggestTravelers(users, "amy", nil)
		require.Len(t, got, 1)
		assert.Equal(t, "u1", got[0].ID)
	})

	t.Run("denylisted accounts excluded", func(t *testing.T) {
		got := SuggestTravelers(users, "", nil)
		require.Len(t, got, 2)
		for _, u := range got {
			assert.NotContains(t, u.Email, "safari-backoffice.test")
		}
	})

	t.Run("already-added excluded", func(t *testing.T) {
		got := SuggestTravelers(users, "example", []string{"Amy@Example.com"})
		require.Len(t, got, 1)
		assert.Equal(t, "u2", got[0].ID)
	})
}

func TestRenderTripReportSummary(t *testing.T) {
	report := validReport()
	summary := RenderTripReportSummary(report, testCatalog())

	assert.Contains(t, summary, "amy@example.com")
	assert.Contains(t, summary, "Sasaab")
	assert.Contains(t, summary, "Stay 2024-01-01 to 2024-01-04")
	assert.Contains(t, summary, "Guiding/animal viewing 10/10", "African luxury property shows animal fields")
	assert.Contains(t, summary, "Leopard on day two")
	assert.Contains(t, summary, "Talisman")

	// A city hotel hides the animal-viewing lines
	report.Properties[0].PropertyID = "prop-africa-city"
	summary = RenderTripReportSummary(report, testCatalog())
	assert.NotContains(t, summary, "Guiding/animal viewing")
	assert.NotContains(t, summary, "Leopard on day two")
}

func TestSaveTripReport(t *testing.T) {
	t.Run("draft", func(t *testing.T) {
		store := &mockTripReportStore{}
		_, errs, err := SaveTripReport(context.Background(), store, zap.NewNop(), validReport(), false)
		require.NoError(t, err)
		require.True(t, errs.OK())

		require.Len(t, store.saved, 1)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(store.saved[0], &payload))
		assert.Equal(t, ReportStatusDraft, payload["status"])
	})

	t.Run("publish", func(t *testing.T) {
		store := &mockTripReportStore{}
		_, errs, err := SaveTripReport(context.Background(), store, zap.NewNop(), validReport(), true)
		require.NoError(t, err)
		require.True(t, errs.OK())

		var payload map[string]any
		require.NoError(t, json.Unmarshal(store.saved[0], &payload))
		assert.Equal(t, ReportStatusFinal, payload["status"])
	})

	t.Run("invalid report makes no network call", func(t *testing.T) {
		store := &mockTripReportStore{}
		_, errs, err := SaveTripReport(context.Background(), store, zap.NewNop(), &TripReport{}, true)
		require.NoError(t, err)
		assert.False(t, errs.OK())
		assert.Empty(t, store.saved)
	})

	t.Run("na rating marshals to null", func(t *testing.T) {
		store := &mockTripReportStore{}
		report := validReport()
		report.Properties[0].Ratings.Guide = Rating{NA: true}
		_, _, err := SaveTripReport(context.Background(), store, zap.NewNop(), report, false)
		require.NoError(t, err)
		assert.Contains(t, string(store.saved[0]), `"guide":null`)
	})
}

func TestLoadTripReport(t *testing.T) {
	doc := `
travelers:
  - amy@example.com
document_updates: "Updated the Kenya doc"
properties:
  - property_id: prop-africa-lux
    date_in: "2024-01-01"
    date_out: "2024-01-04"
    ratings:
      accommodation: 9
      service: 8
      food: 7
      guide: n/a
      overall: 9
activities:
  - name: Talisman
    type: restaurant
    location: Nairobi
    rating: 8
`
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	report, err := LoadTripReport(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"amy@example.com"}, report.Travelers)
	require.Len(t, report.Properties, 1)
	assert.True(t, report.Properties[0].Ratings.Guide.NA)
	assert.Equal(t, 9, report.Properties[0].Ratings.Accommodation.Value)
	assert.NotEmpty(t, report.Properties[0].Key, "segments get client keys on load")
	require.Len(t, report.Activities, 1)
	assert.Equal(t, ActivityTypeRestaurant, report.Activities[0].Type)
}

func TestAutosaver_Debounce(t *testing.T) {
	var saver Autosaver
	now := time.Now()

	msg, ok := saver.Note(now)
	require.True(t, ok)
	assert.NotEmpty(t, msg)

	_, ok = saver.Note(now.Add(time.Second))
	assert.False(t, ok, "changes within the interval stay quiet")

	_, ok = saver.Note(now.Add(3 * time.Second))
	assert.True(t, ok)
}

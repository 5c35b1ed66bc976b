package triage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blood-bank-api-server/internal/models"
)

// fixture builds 25 requests: 3 Critical, 5 High, 10 Medium, 7 Low, in
// that insertion order, each tagged with a sequence number in its
// contact-person name.
func fixture() []models.BloodRequest {
	counts := []struct {
		urgency string
		n       int
	}{
		{models.UrgencyCritical, 3},
		{models.UrgencyHigh, 5},
		{models.UrgencyMedium, 10},
		{models.UrgencyLow, 7},
	}

	var requests []models.BloodRequest
	seq := 0
	for _, c := range counts {
		for i := 0; i < c.n; i++ {
			requests = append(requests, models.BloodRequest{
				ID:            fmt.Sprintf("req-%02d", seq),
				ContactPerson: fmt.Sprintf("Contact %02d", seq),
				PhoneNumber:   fmt.Sprintf("55500000%02d", seq),
				Email:         fmt.Sprintf("contact%02d@example.com", seq),
				BloodGroup:    "O+",
				Urgency:       c.urgency,
				Status:        models.RequestPending,
			})
			seq++
		}
	}
	return requests
}

func TestApply_PageOneOrdering(t *testing.T) {
	result := Apply(fixture(), Params{Page: 1})

	assert.Equal(t, 25, result.Count)
	assert.Equal(t, 3, result.TotalPages)
	require.Len(t, result.Requests, PageSize)

	// 3 Critical, then 5 High, then the first 2 Medium, ties keeping
	// their insertion order.
	var urgencies []string
	for _, req := range result.Requests {
		urgencies = append(urgencies, req.Urgency)
	}
	assert.Equal(t, []string{
		models.UrgencyCritical, models.UrgencyCritical, models.UrgencyCritical,
		models.UrgencyHigh, models.UrgencyHigh, models.UrgencyHigh, models.UrgencyHigh, models.UrgencyHigh,
		models.UrgencyMedium, models.UrgencyMedium,
	}, urgencies)

	for i, req := range result.Requests {
		assert.Equal(t, fmt.Sprintf("req-%02d", i), req.ID, "ties must keep insertion order")
	}
}

func TestApply_PagePastEndIsEmpty(t *testing.T) {
	result := Apply(fixture(), Params{Page: 4})

	assert.Empty(t, result.Requests)
	assert.Equal(t, 25, result.Count)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 4, result.Page)
}

func TestApply_EmptyInput(t *testing.T) {
	result := Apply(nil, Params{Page: 1})

	assert.Empty(t, result.Requests)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, 0, result.TotalPages)
}

func TestApply_PageBelowOneMeansPageOne(t *testing.T) {
	result := Apply(fixture(), Params{Page: 0})
	assert.Equal(t, 1, result.Page)
	assert.Len(t, result.Requests, PageSize)
}

func TestApply_SearchMatching(t *testing.T) {
	requests := []models.BloodRequest{
		{ID: "a", ContactPerson: "Alice Moreau", Email: "alice@example.com", PhoneNumber: "5551112222", Urgency: models.UrgencyLow},
		{ID: "b", ContactPerson: "Bob Tanaka", Email: "bob@example.com", PhoneNumber: "5553334444", Urgency: models.UrgencyLow},
	}

	tests := []struct {
		name     string
		search   string
		expected []string
	}{
		{"empty matches all", "", []string{"a", "b"}},
		{"case-insensitive name", "ALICE", []string{"a"}},
		{"case-insensitive email", "Bob@Example", []string{"b"}},
		{"phone substring", "333444", []string{"b"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Apply(requests, Params{Search: tt.search, Page: 1})
			var ids []string
			for _, req := range result.Requests {
				ids = append(ids, req.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestApply_Filters(t *testing.T) {
	requests := []models.BloodRequest{
		{ID: "a", BloodGroup: "A+", Status: models.RequestPending, Urgency: models.UrgencyLow},
		{ID: "b", BloodGroup: "O-", Status: models.RequestCompleted, Urgency: models.UrgencyCritical},
		{ID: "c", BloodGroup: "A+", Status: models.RequestCompleted, Urgency: models.UrgencyLow},
	}

	result := Apply(requests, Params{BloodGroup: "A+", Page: 1})
	require.Len(t, result.Requests, 2)

	result = Apply(requests, Params{BloodGroup: "A+", Status: models.RequestCompleted, Page: 1})
	require.Len(t, result.Requests, 1)
	assert.Equal(t, "c", result.Requests[0].ID)

	result = Apply(requests, Params{Urgency: models.UrgencyCritical, Page: 1})
	require.Len(t, result.Requests, 1)
	assert.Equal(t, "b", result.Requests[0].ID)
}

func TestApply_UnknownFilterValuesMeanAll(t *testing.T) {
	requests := fixture()

	for _, params := range []Params{
		{BloodGroup: "all", Page: 1},
		{BloodGroup: "Z+", Page: 1},
		{Status: "all", Page: 1},
		{Status: "Misplaced", Page: 1},
		{Urgency: "all", Page: 1},
		{Urgency: "Extreme", Page: 1},
	} {
		result := Apply(requests, params)
		assert.Equal(t, 25, result.Count, "params %+v should not filter anything", params)
	}
}

func TestApply_PureFunction(t *testing.T) {
	requests := fixture()
	params := Params{Urgency: models.UrgencyMedium, Page: 1}

	first := Apply(requests, params)
	second := Apply(requests, params)

	assert.Equal(t, first, second)
}

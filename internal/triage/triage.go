// Package triage turns the raw request list into the operator's view:
// filtered, ordered by urgency, and paged. The pipeline is a pure
// function of its inputs and is recomputed on every call, so any store
// mutation is visible immediately.
package triage

import (
	"math"
	"sort"
	"strings"

	"blood-bank-api-server/internal/models"
)

// PageSize is the fixed number of requests per page.
const PageSize = 10

// Params are the operator's filter and paging inputs. Empty or unknown
// filter values mean "all"; a page below 1 means page 1. Malformed input
// never produces an error, only a wider view.
type Params struct {
	Search     string
	BloodGroup string
	Status     string
	Urgency    string
	Page       int
}

// Result is one page of the triage view plus its paging envelope.
type Result struct {
	Requests   []models.BloodRequest `json:"requests"`
	Count      int                   `json:"count"`
	TotalPages int                   `json:"totalPages"`
	Page       int                   `json:"page"`
}

// Apply runs filter, sort, and paginate over the full request list, in
// that order.
func Apply(requests []models.BloodRequest, p Params) Result {
	filtered := filter(requests, p)

	// Stable, so requests of equal urgency keep their filter-step order.
	sort.SliceStable(filtered, func(i, j int) bool {
		return models.UrgencyWeight(filtered[i].Urgency) > models.UrgencyWeight(filtered[j].Urgency)
	})

	return paginate(filtered, p.Page)
}

func filter(requests []models.BloodRequest, p Params) []models.BloodRequest {
	query := strings.ToLower(p.Search)

	bloodGroup := p.BloodGroup
	if !models.IsValidBloodGroup(bloodGroup) {
		bloodGroup = ""
	}
	status := p.Status
	if !models.IsValidRequestStatus(status) {
		status = ""
	}
	urgency := p.Urgency
	if !models.IsValidUrgency(urgency) {
		urgency = ""
	}

	filtered := make([]models.BloodRequest, 0, len(requests))
	for _, req := range requests {
		if !matchesSearch(req, query, p.Search) {
			continue
		}
		if bloodGroup != "" && req.BloodGroup != bloodGroup {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		if urgency != "" && req.Urgency != urgency {
			continue
		}
		filtered = append(filtered, req)
	}
	return filtered
}

// matchesSearch folds case for the name and email fields; the phone
// number is matched as a raw digit substring.
func matchesSearch(req models.BloodRequest, query, rawQuery string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(req.ContactPerson), query) ||
		strings.Contains(strings.ToLower(req.Email), query) ||
		strings.Contains(req.PhoneNumber, rawQuery)
}

func paginate(requests []models.BloodRequest, page int) Result {
	if page < 1 {
		page = 1
	}
	count := len(requests)
	totalPages := int(math.Ceil(float64(count) / float64(PageSize)))

	start := (page - 1) * PageSize
	if start > count {
		start = count
	}
	end := start + PageSize
	if end > count {
		end = count
	}

	return Result{
		Requests:   requests[start:end],
		Count:      count,
		TotalPages: totalPages,
		Page:       page,
	}
}

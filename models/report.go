package models

import (
	"encoding/json"
	"math"
)

// CoordinatePrecision is the number of decimal places kept for report
// coordinates. Six decimals give roughly 11 cm of resolution, which is more
// than enough for locating a road defect and keeps stored values stable
// across repeated encode/decode cycles.
const CoordinatePrecision = 6

// Report is the denormalized client-side projection of a single road-defect
// report document from the remote collection.
//
// Optional fields are pointers so that "unknown" is distinguishable from the
// zero value: a missing repair cost is nil, never 0.
type Report struct {
	// ID is the remote document identifier and the snapshot map key.
	ID string `json:"id"`

	// Category is the defect category slug (e.g. "pothole", "signage").
	Category string `json:"category"`

	// Status is the triage status assigned by staff (e.g. "new", "resolved").
	Status string `json:"status"`

	// Description is the reporter-supplied free text, nil when absent.
	Description *string `json:"description,omitempty"`

	// Latitude and Longitude are rounded to [CoordinatePrecision] decimals.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// RepairCost is the estimated repair cost. nil means unknown; a report
	// with a confirmed zero cost keeps an explicit 0.
	RepairCost *float64 `json:"repair_cost,omitempty"`

	// ReportedAt is the submission time in epoch milliseconds, nil when the
	// source document carries no parseable timestamp.
	ReportedAt *int64 `json:"reported_at,omitempty"`

	// PhotoURL points at the uploaded defect photo, nil when absent.
	PhotoURL *string `json:"photo_url,omitempty"`

	// Address is the reverse-geocoded street address, nil when absent.
	Address *string `json:"address,omitempty"`

	// ReporterID is the account identifier of the submitting citizen.
	ReporterID string `json:"reporter_id"`
}

// DecodeReport converts a raw remote document into a Report, defaulting every
// field independently so a single malformed document never fails a batch.
//
// Defaulting rules:
//   - string fields: empty or missing optional fields decode to nil;
//   - coordinates: missing or non-finite values decode to 0, finite values
//     are rounded to [CoordinatePrecision] decimals;
//   - repair cost: missing or non-finite decodes to nil, never to 0;
//   - reported-at: accepts an epoch-milliseconds number or a store timestamp
//     object ({seconds, nanos}), anything else decodes to nil.
func DecodeReport(id string, doc map[string]any) Report {
	return Report{
		ID:          id,
		Category:    docString(doc, "category"),
		Status:      docString(doc, "status"),
		Description: docOptString(doc, "description"),
		Latitude:    RoundCoordinate(docFloat(doc, "latitude")),
		Longitude:   RoundCoordinate(docFloat(doc, "longitude")),
		RepairCost:  docOptFloat(doc, "repairCost"),
		ReportedAt:  docEpochMillis(doc, "reportedAt"),
		PhotoURL:    docOptString(doc, "photoUrl"),
		Address:     docOptString(doc, "address"),
		ReporterID:  docString(doc, "reporterId"),
	}
}

// Encode returns the document representation written back to the local cache
// and, on upload paths, to the remote store. Nil pointers stay absent rather
// than being written as zero values.
func (r Report) Encode() map[string]any {
	doc := map[string]any{
		"category":   r.Category,
		"status":     r.Status,
		"latitude":   r.Latitude,
		"longitude":  r.Longitude,
		"reporterId": r.ReporterID,
	}
	if r.Description != nil {
		doc["description"] = *r.Description
	}
	if r.RepairCost != nil {
		doc["repairCost"] = *r.RepairCost
	}
	if r.ReportedAt != nil {
		doc["reportedAt"] = *r.ReportedAt
	}
	if r.PhotoURL != nil {
		doc["photoUrl"] = *r.PhotoURL
	}
	if r.Address != nil {
		doc["address"] = *r.Address
	}
	return doc
}

// RoundCoordinate rounds v to [CoordinatePrecision] decimal places.
// Non-finite input collapses to 0 so a corrupt coordinate cannot poison
// equality comparisons in the snapshot.
func RoundCoordinate(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	shift := math.Pow(10, CoordinatePrecision)
	return math.Round(v*shift) / shift
}

func docString(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docOptString(doc map[string]any, key string) *string {
	s, ok := doc[key].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func docFloat(doc map[string]any, key string) float64 {
	f, ok := docNumeric(doc[key])
	if !ok {
		return 0
	}
	return f
}

func docOptFloat(doc map[string]any, key string) *float64 {
	f, ok := docNumeric(doc[key])
	if !ok {
		return nil
	}
	return &f
}

func docNumeric(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func docEpochMillis(doc map[string]any, key string) *int64 {
	switch v := doc[key].(type) {
	case nil:
		return nil
	case map[string]any:
		// Store-native timestamp object: {seconds, nanos}.
		secs, ok := docNumeric(v["seconds"])
		if !ok {
			return nil
		}
		nanos, _ := docNumeric(v["nanos"])
		ms := int64(secs)*1000 + int64(nanos)/1e6
		return &ms
	default:
		f, ok := docNumeric(v)
		if !ok {
			return nil
		}
		ms := int64(f)
		return &ms
	}
}

package loads

import (
	"sort"
	"strings"
	"time"
)

// Filters is the query configuration shared by the list and stats endpoints.
// All set filters combine with logical AND.
type Filters struct {
	Status        *Status
	EquipmentType string
	CommodityType string
	Origin        string
	Destination   string

	PickupFrom   *time.Time
	PickupTo     *time.Time
	DeliveryFrom *time.Time
	DeliveryTo   *time.Time

	// Query matches case-insensitively against load_id, origin, destination,
	// commodity_type and notes.
	Query string

	AssignedViaURL *bool

	// SortBy is one of created_at, pickup_datetime, delivery_datetime,
	// loadboard_rate, miles. Unknown values fall back to created_at.
	SortBy    string
	SortOrder string
}

const (
	SortByCreatedAt        = "created_at"
	SortByPickupDatetime   = "pickup_datetime"
	SortByDeliveryDatetime = "delivery_datetime"
	SortByLoadboardRate    = "loadboard_rate"
	SortByMiles            = "miles"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Match reports whether the load passes every set filter.
func (f Filters) Match(l Load) bool {
	if f.Status != nil && l.Status != *f.Status {
		return false
	}
	if f.EquipmentType != "" && !containsFold(strPtr(l.EquipmentType), f.EquipmentType) {
		return false
	}
	if f.CommodityType != "" && !containsFold(strPtr(l.CommodityType), f.CommodityType) {
		return false
	}
	if f.Origin != "" && !containsFold(l.Origin, f.Origin) {
		return false
	}
	if f.Destination != "" && !containsFold(l.Destination, f.Destination) {
		return false
	}
	if f.PickupFrom != nil && l.PickupDatetime.Before(*f.PickupFrom) {
		return false
	}
	if f.PickupTo != nil && l.PickupDatetime.After(*f.PickupTo) {
		return false
	}
	if f.DeliveryFrom != nil && l.DeliveryDatetime.Before(*f.DeliveryFrom) {
		return false
	}
	if f.DeliveryTo != nil && l.DeliveryDatetime.After(*f.DeliveryTo) {
		return false
	}
	if f.AssignedViaURL != nil && l.AssignedViaURL != *f.AssignedViaURL {
		return false
	}
	if f.Query != "" {
		if !containsFold(l.LoadID, f.Query) &&
			!containsFold(l.Origin, f.Query) &&
			!containsFold(l.Destination, f.Query) &&
			!containsFold(strPtr(l.CommodityType), f.Query) &&
			!containsFold(strPtr(l.Notes), f.Query) {
			return false
		}
	}
	return true
}

// SortLoads orders loads in place. The sort is stable: ties keep their
// relative input order. Missing values sort as zero (epoch for timestamps).
func SortLoads(ls []Load, sortBy, order string) {
	desc := strings.EqualFold(order, SortDesc)

	var less func(a, b Load) bool
	switch sortBy {
	case SortByPickupDatetime:
		less = func(a, b Load) bool { return a.PickupDatetime.Before(b.PickupDatetime) }
	case SortByDeliveryDatetime:
		less = func(a, b Load) bool { return a.DeliveryDatetime.Before(b.DeliveryDatetime) }
	case SortByLoadboardRate:
		less = func(a, b Load) bool { return floatOrZero(a.LoadboardRate) < floatOrZero(b.LoadboardRate) }
	case SortByMiles:
		less = func(a, b Load) bool { return floatOrZero(a.Miles) < floatOrZero(b.Miles) }
	default:
		less = func(a, b Load) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}

	sort.SliceStable(ls, func(i, j int) bool {
		if desc {
			// Swapped operands rather than negated: keeps ties stable.
			return less(ls[j], ls[i])
		}
		return less(ls[i], ls[j])
	})
}

// CallFilters narrows the global phone-call listing.
type CallFilters struct {
	CallType  *CallType
	Agreed    *bool
	Sentiment *Sentiment
}

func (f CallFilters) Match(c PhoneCall) bool {
	if f.CallType != nil && c.CallType != *f.CallType {
		return false
	}
	if f.Agreed != nil && c.Agreed != *f.Agreed {
		return false
	}
	if f.Sentiment != nil && c.Sentiment != *f.Sentiment {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

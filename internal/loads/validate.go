package loads

import "strings"

// validateLoad checks the fully merged candidate record. Every write path
// (create, generic update, manual update) funnels through this one function so
// the status/required-field coupling and the pickup-before-delivery rule hold
// no matter which fields a partial update touched.
func validateLoad(l Load) error {
	v := newValidationError()

	if strings.TrimSpace(l.LoadID) == "" {
		v.add("load_id", "is required")
	}
	if strings.TrimSpace(l.Origin) == "" {
		v.add("origin", "is required")
	}
	if strings.TrimSpace(l.Destination) == "" {
		v.add("destination", "is required")
	}
	if l.PickupDatetime.IsZero() {
		v.add("pickup_datetime", "is required")
	}
	if l.DeliveryDatetime.IsZero() {
		v.add("delivery_datetime", "is required")
	}
	if !l.PickupDatetime.IsZero() && !l.DeliveryDatetime.IsZero() && !l.DeliveryDatetime.After(l.PickupDatetime) {
		v.add("delivery_datetime", "must be after pickup_datetime")
	}

	if !l.Status.Valid() {
		v.add("status", "must be pending or agreed")
	}
	if l.Status == StatusAgreed {
		if l.AgreedPrice == nil {
			v.add("agreed_price", "is required when status is agreed")
		}
		if l.CarrierDescription == nil || strings.TrimSpace(*l.CarrierDescription) == "" {
			v.add("carrier_description", "is required when status is agreed")
		}
	}

	checkNonNegative(v, "loadboard_rate", l.LoadboardRate)
	checkNonNegative(v, "agreed_price", l.AgreedPrice)
	checkNonNegative(v, "weight", l.Weight)
	checkNonNegative(v, "miles", l.Miles)
	checkNonNegative(v, "time_per_call_seconds", l.TimePerCallSeconds)
	if l.NumOfPieces != nil && *l.NumOfPieces < 0 {
		v.add("num_of_pieces", "must be non-negative")
	}

	return v.orNil()
}

func checkNonNegative(v *ValidationError, field string, val *float64) {
	if val != nil && *val < 0 {
		v.add(field, "must be non-negative")
	}
}

// validatePhoneCall checks a call payload before it is appended to a load.
func validatePhoneCall(c PhoneCall) error {
	v := newValidationError()

	if c.Seconds < 0 {
		v.add("seconds", "must be non-negative")
	}
	if !c.CallType.Valid() {
		v.add("call_type", "must be manual or agent")
	}
	if !c.Sentiment.Valid() {
		v.add("sentiment", "must be positive, neutral or negative")
	}

	return v.orNil()
}

package loads

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CreateLoadRequest carries the fields accepted on load creation.
// assigned_via_url is intentionally absent: provenance is set by the endpoint,
// never by payload content.
type CreateLoadRequest struct {
	LoadID           string    `json:"load_id"`
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	PickupDatetime   time.Time `json:"pickup_datetime"`
	DeliveryDatetime time.Time `json:"delivery_datetime"`

	EquipmentType *string  `json:"equipment_type"`
	LoadboardRate *float64 `json:"loadboard_rate"`
	Notes         *string  `json:"notes"`
	Weight        *float64 `json:"weight"`
	CommodityType *string  `json:"commodity_type"`
	NumOfPieces   *int     `json:"num_of_pieces"`
	Miles         *float64 `json:"miles"`
	Dimensions    *string  `json:"dimensions"`

	AgreedPrice        *float64 `json:"agreed_price"`
	CarrierDescription *string  `json:"carrier_description"`
	TimePerCallSeconds *float64 `json:"time_per_call_seconds"`

	Status *Status `json:"status"`
}

// UpdateLoadRequest is a partial update: nil means "leave unchanged".
type UpdateLoadRequest struct {
	LoadID           *string    `json:"load_id"`
	Origin           *string    `json:"origin"`
	Destination      *string    `json:"destination"`
	PickupDatetime   *time.Time `json:"pickup_datetime"`
	DeliveryDatetime *time.Time `json:"delivery_datetime"`

	EquipmentType *string  `json:"equipment_type"`
	LoadboardRate *float64 `json:"loadboard_rate"`
	Notes         *string  `json:"notes"`
	Weight        *float64 `json:"weight"`
	CommodityType *string  `json:"commodity_type"`
	NumOfPieces   *int     `json:"num_of_pieces"`
	Miles         *float64 `json:"miles"`
	Dimensions    *string  `json:"dimensions"`

	AgreedPrice        *float64 `json:"agreed_price"`
	CarrierDescription *string  `json:"carrier_description"`
	TimePerCallSeconds *float64 `json:"time_per_call_seconds"`

	Status *Status `json:"status"`
}

// PhoneCallRequest appends a call to a load. Agent integrations are known to
// send booleans and numbers as strings ("True", "750"), so both fields accept
// either representation.
type PhoneCallRequest struct {
	Agreed    FlexBool  `json:"agreed"`
	Seconds   FlexFloat `json:"seconds"`
	CallType  CallType  `json:"call_type"`
	Sentiment Sentiment `json:"sentiment"`
	CallID    *string   `json:"call_id"`
	Notes     *string   `json:"notes"`
}

// FlexBool unmarshals from a JSON bool or from a string like "true"/"False"/"1".
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			return fmt.Errorf("invalid boolean %q", s)
		}
		*b = FlexBool(v)
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = FlexBool(v)
	return nil
}

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// FlexFloat unmarshals from a JSON number or from a numeric string like "750".
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

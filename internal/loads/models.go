package loads

import "time"

// Load is a freight shipment record. It is the central entity of the system.
//
// Invariants:
// - LoadID is unique among stored records.
// - AgreedPrice and CarrierDescription are required iff Status is "agreed".
// - AssignedViaURL reflects the channel of the last write (API vs manual UI),
//   never caller-supplied payload data.

type Load struct {
	ID     string `json:"id" db:"id"`
	LoadID string `json:"load_id" db:"load_id"`

	Origin      string `json:"origin" db:"origin"`
	Destination string `json:"destination" db:"destination"`

	PickupDatetime   time.Time `json:"pickup_datetime" db:"pickup_datetime"`
	DeliveryDatetime time.Time `json:"delivery_datetime" db:"delivery_datetime"`

	EquipmentType *string  `json:"equipment_type,omitempty" db:"equipment_type"`
	LoadboardRate *float64 `json:"loadboard_rate,omitempty" db:"loadboard_rate"`
	Notes         *string  `json:"notes,omitempty" db:"notes"`
	Weight        *float64 `json:"weight,omitempty" db:"weight"`
	CommodityType *string  `json:"commodity_type,omitempty" db:"commodity_type"`
	NumOfPieces   *int     `json:"num_of_pieces,omitempty" db:"num_of_pieces"`
	Miles         *float64 `json:"miles,omitempty" db:"miles"`
	Dimensions    *string  `json:"dimensions,omitempty" db:"dimensions"`

	AgreedPrice        *float64 `json:"agreed_price,omitempty" db:"agreed_price"`
	CarrierDescription *string  `json:"carrier_description,omitempty" db:"carrier_description"`

	// AssignedViaURL is true when the last mutation came through the API/agent
	// channel, false when it came through the manual UI channel.
	AssignedViaURL bool `json:"assigned_via_url" db:"assigned_via_url"`

	// TimePerCallSeconds is a manually reported aggregate, kept separate from
	// the phone-call list.
	TimePerCallSeconds *float64 `json:"time_per_call_seconds,omitempty" db:"time_per_call_seconds"`

	Status Status `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Status string

const (
	StatusPending Status = "pending"
	StatusAgreed  Status = "agreed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAgreed:
		return true
	default:
		return false
	}
}

// Channel identifies which write path mutated a load.
type Channel string

const (
	ChannelManual Channel = "manual"
	ChannelURLAPI Channel = "url_api"
)

// PhoneCall is a logged interaction owned by a load. Calls are append-only and
// are removed when the parent load is deleted or its calls are bulk-cleared.
type PhoneCall struct {
	ID         string `json:"id" db:"id"`
	ShipmentID string `json:"shipment_id" db:"shipment_id"`

	Seconds   float64   `json:"seconds" db:"seconds"`
	CallType  CallType  `json:"call_type" db:"call_type"`
	Sentiment Sentiment `json:"sentiment" db:"sentiment"`

	// Agreed marks whether the call resulted in agreement.
	Agreed bool `json:"agreed" db:"agreed"`

	// CallID is an optional external identifier from the telephony side.
	CallID *string `json:"call_id,omitempty" db:"call_id"`
	Notes  *string `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CallType string

const (
	CallTypeManual CallType = "manual"
	CallTypeAgent  CallType = "agent"
)

func (t CallType) Valid() bool {
	switch t {
	case CallTypeManual, CallTypeAgent:
		return true
	default:
		return false
	}
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	default:
		return false
	}
}

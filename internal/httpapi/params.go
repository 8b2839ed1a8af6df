package httpapi

import (
	"strconv"
	"time"

	"loadboard/internal/loads"

	"github.com/gin-gonic/gin"
)

// parseFilters maps query parameters onto the filter configuration shared by
// the list and stats endpoints. Bad values come back as a *loads.ValidationError
// so callers get the same field-level shape as write rejections.
func parseFilters(c *gin.Context) (loads.Filters, error) {
	f := loads.Filters{
		EquipmentType: c.Query("equipment_type"),
		CommodityType: c.Query("commodity_type"),
		Origin:        c.Query("origin"),
		Destination:   c.Query("destination"),
		Query:         c.Query("q"),
		SortBy:        c.DefaultQuery("sort_by", loads.SortByCreatedAt),
		SortOrder:     c.DefaultQuery("sort_order", loads.SortDesc),
	}

	fields := map[string]string{}

	if v := c.Query("status"); v != "" {
		st := loads.Status(v)
		if !st.Valid() {
			fields["status"] = "must be pending or agreed"
		} else {
			f.Status = &st
		}
	}

	f.PickupFrom = parseTimeParam(c, "pickup_from", fields)
	f.PickupTo = parseTimeParam(c, "pickup_to", fields)
	f.DeliveryFrom = parseTimeParam(c, "delivery_from", fields)
	f.DeliveryTo = parseTimeParam(c, "delivery_to", fields)

	if v := c.Query("assigned_via_url"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fields["assigned_via_url"] = "must be a boolean"
		} else {
			f.AssignedViaURL = &b
		}
	}

	if len(fields) > 0 {
		return loads.Filters{}, &loads.ValidationError{Fields: fields}
	}
	return f, nil
}

func parseTimeParam(c *gin.Context, name string, fields map[string]string) *time.Time {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		fields[name] = "must be an RFC 3339 timestamp"
		return nil
	}
	return &t
}

func parseCallFilters(c *gin.Context) (loads.CallFilters, error) {
	var f loads.CallFilters
	fields := map[string]string{}

	if v := c.Query("call_type"); v != "" {
		ct := loads.CallType(v)
		if !ct.Valid() {
			fields["call_type"] = "must be manual or agent"
		} else {
			f.CallType = &ct
		}
	}
	if v := c.Query("agreed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fields["agreed"] = "must be a boolean"
		} else {
			f.Agreed = &b
		}
	}
	if v := c.Query("sentiment"); v != "" {
		st := loads.Sentiment(v)
		if !st.Valid() {
			fields["sentiment"] = "must be positive, neutral or negative"
		} else {
			f.Sentiment = &st
		}
	}

	if len(fields) > 0 {
		return loads.CallFilters{}, &loads.ValidationError{Fields: fields}
	}
	return f, nil
}

package model

import "encoding/json"

// FlexInt accepts both JSON numbers and numeric strings.  Customer ages
// were entered through several generations of the admin forms and exist
// in the store in both shapes; the read boundary normalizes them here
// instead of propagating the inconsistency further.
type FlexInt int

// UnmarshalJSON decodes either 42 or "42" into a FlexInt.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		var n json.Number = json.Number(s)
		v, err := n.Int64()
		if err != nil {
			return err
		}
		*f = FlexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexInt(v)
	return nil
}

// Customer represents a ticket-buying customer document.
//
// Fields:
//  ID         – store-assigned identifier ("customer_<uuid>").
//  Type       – document type discriminator, always "customer".
//  Name       – full name.
//  Age        – age in years; tolerant of string-encoded values.
//  Image      – URL of the uploaded profile image.
//  City       – home city.
//  DateJoin   – when the customer joined, RFC 3339 form.
//  TotalSpent – lifetime spend in the store's currency.
type Customer struct {
	ID         string  `json:"_id"`
	Type       string  `json:"_type"`
	Name       string  `json:"name"`
	Age        FlexInt `json:"age"`
	Image      string  `json:"image,omitempty"`
	City       string  `json:"city"`
	DateJoin   string  `json:"dateJoin"`
	TotalSpent float64 `json:"totalSpent"`
}

package content

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/iliyamo/cinema-admin-api/internal/model"
)

// ErrMalformedDocument is returned when a store document fails the
// constraint checks at the read boundary.  Query results are untyped;
// rather than propagating undefined fields into the rest of the
// service, decoding rejects documents that do not satisfy the entity
// contract.
var ErrMalformedDocument = errors.New("malformed document")

func malformed(docType, id, reason string) error {
	if id == "" {
		id = "<missing id>"
	}
	return fmt.Errorf("%w: %s %s: %s", ErrMalformedDocument, docType, id, reason)
}

// DecodeCinemas converts an untyped query result into cinema records,
// rejecting documents with a wrong type discriminator or missing
// required fields.
func DecodeCinemas(res gjson.Result) ([]model.Cinema, error) {
	out := make([]model.Cinema, 0, int(res.Get("#").Int()))
	var err error
	res.ForEach(func(_, item gjson.Result) bool {
		var c model.Cinema
		if uerr := json.Unmarshal([]byte(item.Raw), &c); uerr != nil {
			err = malformed(TypeCinema, item.Get("_id").String(), uerr.Error())
			return false
		}
		if err = validateCinema(c); err != nil {
			return false
		}
		out = append(out, c)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func validateCinema(c model.Cinema) error {
	switch {
	case c.ID == "":
		return malformed(TypeCinema, c.ID, "missing _id")
	case c.Type != TypeCinema:
		return malformed(TypeCinema, c.ID, "wrong _type "+c.Type)
	case c.Name == "":
		return malformed(TypeCinema, c.ID, "missing name")
	case c.Capacity < 0:
		return malformed(TypeCinema, c.ID, "negative capacity")
	}
	return nil
}

// DecodeEvents converts an untyped query result into event records.
func DecodeEvents(res gjson.Result) ([]model.Event, error) {
	out := make([]model.Event, 0, int(res.Get("#").Int()))
	var err error
	res.ForEach(func(_, item gjson.Result) bool {
		var e model.Event
		if uerr := json.Unmarshal([]byte(item.Raw), &e); uerr != nil {
			err = malformed(TypeEvent, item.Get("_id").String(), uerr.Error())
			return false
		}
		switch {
		case e.ID == "":
			err = malformed(TypeEvent, e.ID, "missing _id")
		case e.Type != TypeEvent:
			err = malformed(TypeEvent, e.ID, "wrong _type "+e.Type)
		case e.Title == "":
			err = malformed(TypeEvent, e.ID, "missing title")
		case e.DateTime == "":
			err = malformed(TypeEvent, e.ID, "missing dateTime")
		}
		if err != nil {
			return false
		}
		out = append(out, e)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeCustomers converts an untyped query result into customer
// records.  Ages stored as numeric strings are accepted; anything else
// is rejected.
func DecodeCustomers(res gjson.Result) ([]model.Customer, error) {
	out := make([]model.Customer, 0, int(res.Get("#").Int()))
	var err error
	res.ForEach(func(_, item gjson.Result) bool {
		var cu model.Customer
		if uerr := json.Unmarshal([]byte(item.Raw), &cu); uerr != nil {
			err = malformed(TypeCustomer, item.Get("_id").String(), uerr.Error())
			return false
		}
		switch {
		case cu.ID == "":
			err = malformed(TypeCustomer, cu.ID, "missing _id")
		case cu.Type != TypeCustomer:
			err = malformed(TypeCustomer, cu.ID, "wrong _type "+cu.Type)
		case cu.Name == "":
			err = malformed(TypeCustomer, cu.ID, "missing name")
		case cu.Age < 0:
			err = malformed(TypeCustomer, cu.ID, "negative age")
		}
		if err != nil {
			return false
		}
		out = append(out, cu)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeReviews converts an untyped query result into review records.
func DecodeReviews(res gjson.Result) ([]model.Review, error) {
	out := make([]model.Review, 0, int(res.Get("#").Int()))
	var err error
	res.ForEach(func(_, item gjson.Result) bool {
		var r model.Review
		if uerr := json.Unmarshal([]byte(item.Raw), &r); uerr != nil {
			err = malformed(TypeReview, item.Get("_id").String(), uerr.Error())
			return false
		}
		switch {
		case r.ID == "":
			err = malformed(TypeReview, r.ID, "missing _id")
		case r.Type != TypeReview:
			err = malformed(TypeReview, r.ID, "wrong _type "+r.Type)
		case r.Rating < 0 || r.Rating > 5:
			err = malformed(TypeReview, r.ID, "rating out of range")
		}
		if err != nil {
			return false
		}
		out = append(out, r)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeCount reads a scalar count result.
func DecodeCount(res gjson.Result) (int, error) {
	if res.Type != gjson.Number {
		return 0, fmt.Errorf("%w: count result is not a number", ErrMalformedDocument)
	}
	return int(res.Int()), nil
}

package model

// Cinema represents a venue document held by the content store.  Price
// tiers are managed separately from the base record: a newly created
// cinema starts with all tiers at zero and they are adjusted later via
// the price settings endpoint.
//
// Fields:
//  ID             – store-assigned identifier ("cinema_<uuid>").
//  Type           – document type discriminator, always "cinema".
//  Name           – display name of the venue.
//  Location       – city / address line.
//  Capacity       – total seat capacity.
//  Image          – URL of the uploaded venue image.
//  ExecutivePrice – ticket price for the executive tier.
//  PremierPrice   – ticket price for the premier tier.
//  ClassicPrice   – ticket price for the classic tier.
type Cinema struct {
	ID             string  `json:"_id"`
	Type           string  `json:"_type"`
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	Capacity       int     `json:"capacity"`
	Image          string  `json:"image,omitempty"`
	ExecutivePrice float64 `json:"executivePrice"`
	PremierPrice   float64 `json:"premierPrice"`
	ClassicPrice   float64 `json:"classicPrice"`
}

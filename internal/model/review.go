package model

// Review represents a customer review of an event.  The customer and
// event are linked by their display names rather than document ids;
// renaming either breaks the linkage.  Existing documents in the store
// already use this shape, so new writes keep it.
//
// Fields:
//  ID        – store-assigned identifier ("review<uuid>").
//  Type      – document type discriminator, always "review".
//  Name      – customer display name (denormalized).
//  EventName – event title (denormalized).
//  Cinema    – reference to the cinema the review belongs to.
//  Rating    – star rating from 0 to 5.
//  Message   – review body.
//  CreatedAt – store-assigned creation timestamp, used for ordering.
type Review struct {
	ID        string    `json:"_id"`
	Type      string    `json:"_type"`
	Name      string    `json:"name"`
	EventName string    `json:"EventName"`
	Cinema    Reference `json:"cinema"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	CreatedAt string    `json:"_createdAt,omitempty"`
}

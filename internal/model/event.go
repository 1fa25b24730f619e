package model

// Reference is a pointer to another document in the content store.
type Reference struct {
	Type string `json:"_type"` // always "reference"
	Ref  string `json:"_ref"`  // id of the referenced document
}

// Event represents a single screening.  It references its cinema by
// document id; the referenced cinema is not embedded.
//
// Fields:
//  ID          – store-assigned identifier ("event<uuid>").
//  Type        – document type discriminator, always "event".
//  Title       – movie or event title.
//  DateTime    – screening start in RFC 3339 form, as stored.
//  Cinema      – reference to the cinema document hosting the screening.
//  Description – free-form description shown in listings.
type Event struct {
	ID          string    `json:"_id"`
	Type        string    `json:"_type"`
	Title       string    `json:"title"`
	DateTime    string    `json:"dateTime"`
	Cinema      Reference `json:"cinema"`
	Description string    `json:"description,omitempty"`
}

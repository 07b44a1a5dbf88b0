package model

import "time"

// Hotel is a property that rooms belong to. Hotels are reference
// data: rows are created out of band (seed or admin tooling) and the
// service only ever reads them.
//
// Fields:
//  ID          - primary key identifier.
//  Name        - display name of the hotel.
//  Location    - free-text location used for substring search.
//  Description - marketing description shown on the detail page.
//  ImageURL    - reference to the hotel image asset.
//  CreatedAt   - row creation timestamp.
type Hotel struct {
	ID          uint64    // hotels.id
	Name        string    // hotels.name
	Location    string    // hotels.location
	Description string    // hotels.description
	ImageURL    string    // hotels.image_url
	CreatedAt   time.Time // hotels.created_at
}

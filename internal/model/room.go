package model

import "time"

// Room represents a bookable meeting room.  Rooms are read-mostly:
// they are created by administrators and referenced by bookings, which
// partition conflict detection by RoomID.
//
// Fields:
//  ID        – primary key (UUID).
//  Name      – display name, unique per deployment.
//  Location  – optional free-form location (building, floor).
//  Capacity  – number of people the room holds.
//  Equipment – free-form equipment list (stored as a JSON array).
//  ImageURL  – optional picture shown in listings.
//  CreatedAt – creation timestamp.
type Room struct {
	ID        string    // rooms.id (UUID)
	Name      string    // rooms.name
	Location  *string   // rooms.location (nullable)
	Capacity  uint32    // rooms.capacity
	Equipment []string  // rooms.equipment (JSON column)
	ImageURL  *string   // rooms.image_url (nullable)
	CreatedAt time.Time // rooms.created_at
}

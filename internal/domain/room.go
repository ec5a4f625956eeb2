package domain

// Room is a lab room from the shared catalog. Rooms are immutable once
// created and are shared by reference across genes.
type Room struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// FitsCapacity reports whether a session with the given number of
// enrolled students can be held in this room.
func (r *Room) FitsCapacity(capacity int) bool {
	return capacity <= r.Capacity
}

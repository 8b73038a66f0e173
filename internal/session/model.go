package session

import "time"

// User is the active authenticated identity and its rewards state.
type User struct {
	Username            string
	Points              int
	VIP                 bool
	PermanentVIP        bool
	LastCheckIn         *time.Time
	ConsecutiveCheckIns int
}

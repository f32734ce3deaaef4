package user

import "time"

type User struct {
	ID           string
	TeamName     string
	Email        string
	RegisteredAt time.Time
}

// RegistrationCode is a single-use entry ticket handed out by the pool
// admin. UsedBy stays empty until a user consumes the code.
type RegistrationCode struct {
	Code     string
	IssuedAt time.Time
	UsedBy   string
	UsedAt   *time.Time
}

func (c RegistrationCode) Used() bool {
	return c.UsedBy != ""
}

// Package uuid wraps google/uuid so that IDs can be bound from URI and
// query parameters by gin.
package uuid

import guuid "github.com/google/uuid"

type UUID struct {
	guuid.UUID
}

// Nil is the zero UUID, used to detect unset IDs.
var Nil UUID

func New() UUID {
	return UUID{guuid.New()}
}

func NewString() string {
	return guuid.NewString()
}

// UnmarshalParam implements gin's binding.BindUnmarshaler. An empty
// parameter binds to Nil so that optional ID parameters can be left out.
func (u *UUID) UnmarshalParam(param string) error {
	if param == "" {
		*u = Nil
		return nil
	}

	id, err := guuid.Parse(param)
	if err != nil {
		return err
	}

	*u = UUID{id}
	return nil
}

package domain

import (
	"github.com/google/uuid"
)

type CallID uuid.UUID

func NewCallID() CallID {
	return CallID(uuid.New())
}

func (id CallID) String() string {
	return uuid.UUID(id).String()
}

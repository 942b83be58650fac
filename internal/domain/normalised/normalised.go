package normalised

import (
	"time"

	"github.com/google/uuid"
)

type Source string

const (
	SourceManual   Source = "MANUAL"
	SourceExternal Source = "EXTERNAL"
	SourceRaw      Source = "RAW"
)

const (
	TypeSkill   = "skill"
	TypeUnknown = "unknown"
)

// Entity is a raw entity mapped to a canonical label.
type Entity struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Original   string
	Normalised string
	URI        *string
	Source     Source
	Type       string
	CreatedAt  time.Time
}

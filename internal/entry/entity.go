// AngelaMos | 2026
// entity.go

package entry

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const PointType = "Point"

// Point is a GeoJSON point: [longitude, latitude] with an optional
// elevation. It is stored as JSONB.
type Point struct {
	Type        string    `json:"type"        validate:"required,eq=Point"`
	Coordinates []float64 `json:"coordinates" validate:"required,min=2,max=3"`
}

// UnmarshalJSON rejects null coordinates instead of letting them decode
// to zero.
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        string     `json:"type"`
		Coordinates []*float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var coords []float64
	if raw.Coordinates != nil {
		coords = make([]float64, 0, len(raw.Coordinates))
		for i, c := range raw.Coordinates {
			if c == nil {
				return fmt.Errorf("point coordinate %d is null", i)
			}
			coords = append(coords, *c)
		}
	}

	p.Type = raw.Type
	p.Coordinates = coords
	return nil
}

func (p Point) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode point: %w", err)
	}
	return b, nil
}

func (p *Point) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*p = Point{}
		return nil
	default:
		return fmt.Errorf("scan point: unsupported type %T", src)
	}

	if err := json.Unmarshal(raw, p); err != nil {
		return fmt.Errorf("scan point: %w", err)
	}
	return nil
}

type Entry struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Date      time.Time `db:"date"`
	Mood      string    `db:"mood"`
	Entry     string    `db:"entry"`
	Location  Point     `db:"location"`
	Weather   *string   `db:"weather"`
	UpdatedAt time.Time `db:"updated_at"`
}

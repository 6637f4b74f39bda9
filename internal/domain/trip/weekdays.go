package trip

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Weekdays holds allowed weekday indices with 0 = Sunday, matching
// time.Weekday. A nil or empty set allows every day.
type Weekdays []int

func (w Weekdays) Validate() error {
	for _, d := range w {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: %d", ErrInvalidWeekday, d)
		}
	}
	return nil
}

func (w Weekdays) Allows(day time.Weekday) bool {
	if len(w) == 0 {
		return true
	}
	for _, d := range w {
		if d == int(day) {
			return true
		}
	}
	return false
}

func (w Weekdays) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	arr := make(pq.Int64Array, len(w))
	for i, d := range w {
		arr[i] = int64(d)
	}
	return arr.Value()
}

func (w *Weekdays) Scan(src any) error {
	var arr pq.Int64Array
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("scan weekdays: %w", err)
	}
	if arr == nil {
		*w = nil
		return nil
	}
	out := make(Weekdays, len(arr))
	for i, d := range arr {
		out[i] = int(d)
	}
	*w = out
	return nil
}

func (Weekdays) GormDataType() string {
	return "weekdays"
}

// GormDBDataType stores the set as a native integer array on postgres and
// as array literal text elsewhere.
func (Weekdays) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "integer[]"
	}
	return "text"
}

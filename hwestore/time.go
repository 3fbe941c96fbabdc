package hwestore

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Time is stored as unixtime. Derived from
// https://github.com/mattn/go-sqlite3/issues/190#issuecomment-343341834
type Time time.Time

// Now is the current time at the resolution stored in the database.
func Now() Time {
	return Time(time.Now().Truncate(time.Second))
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Value() (driver.Value, error) {
	return time.Time(t).Unix(), nil
}

func (t *Time) Scan(v interface{}) error {
	switch which := v.(type) {
	case int64:
		*t = Time(time.Unix(which, 0))
		return nil
	case int:
		*t = Time(time.Unix(int64(which), 0))
		return nil
	case []byte:
		vt, err := time.Parse("2006-01-02 15:04:05", string(which))
		if err != nil {
			return err
		}
		*t = Time(vt)
		return nil
	}

	return fmt.Errorf("No appropriate type could be found to decode %v", v)
}

package model

// Int64 returns a pointer to v, for optional snapshot fields
func Int64(v int64) *int64 { return &v }

// Int converts v to an optional int64
func Int(v int) *int64 {
	n := int64(v)
	return &n
}

// Float returns a pointer to v
func Float(v float64) *float64 { return &v }

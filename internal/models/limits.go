package models

import "math"

// Column sizes shared by every migration set. SQLite does not enforce them,
// so services check input against these before writing.
const (
	MaxUserNameLen    = 80
	MaxEmailLen       = 120
	MaxDescriptionLen = 120
	MaxProductNameLen = 100

	// MaxQuantity and MinQuantity bound the INTEGER quantity columns.
	MaxQuantity = math.MaxInt32
	MinQuantity = math.MinInt32
)

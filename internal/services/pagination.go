package services

const (
	DefaultPage       = 1
	MaxPage           = 10000
	DefaultPageSize   = 20
	MaxPageSize       = 50
	DefaultListLimit  = 50
	MaxListLimit      = 100
	UpcomingLessonCap = 10
)

// ClampInt bounds value to [min, max]. Callers pass fallback through when the
// raw input was missing or unparsable.
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// NormalizePage clamps page to [1,10000] and pageSize to [1,50].
func NormalizePage(page, pageSize int) (int, int) {
	return ClampInt(page, 1, MaxPage), ClampInt(pageSize, 1, MaxPageSize)
}

func offsetFor(page, pageSize int) int {
	return (page - 1) * pageSize
}

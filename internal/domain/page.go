package domain

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageBounds clamps a requested page the way every listing applies it: a
// missing limit becomes the default, large limits are capped and negative
// offsets start at zero.
func PageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

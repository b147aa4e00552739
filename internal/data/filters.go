package data

import "rizkifajar/quran-api/internal/validator"

type Filters struct {
	Page     int
	PageSize int
}

// Validate performs generic pagination validation
// Returns validator with errors if invalid
func (f *Filters) Validate(v *validator.Validator) {
	v.Check(f.Page > 0, "page", "must be atleast 1")
	v.Check(f.Page <= 10000, "page", "must be at most 10000")
	v.Check(f.PageSize > 0, "per_page", "must be at least 1")
	v.Check(f.PageSize <= 100, "per_page", "must be at most 100")
}

package dto

import "net/url"

// RapportFilter is the period of an accounting report. Kind comes from the
// path.
type RapportFilter struct {
	Debut string `form:"debut" validate:"required,datetime=2006-01-02"`
	Fin   string `form:"fin"   validate:"required,datetime=2006-01-02"`
}

func (f RapportFilter) Query() url.Values {
	q := url.Values{}
	setIf(q, "debut", f.Debut)
	setIf(q, "fin", f.Fin)
	return q
}

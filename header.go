package vartable

// Category is the header section a field is declared in.
type Category int

const (
	CategoryInfo Category = iota
	CategoryFilter
	CategoryFormat
)

func (c Category) String() string {
	switch c {
	case CategoryInfo:
		return "INFO"
	case CategoryFilter:
		return "FILTER"
	case CategoryFormat:
		return "FORMAT"

	default:
		return "Illegal selection"
	}
}

// HeaderField is one ##INFO, ##FORMAT or ##FILTER meta-information line.
// FILTER lines carry no Number or Type.
type HeaderField struct {
	Category    Category
	ID          string
	Number      string
	Type        string
	Description string
}

// Header holds the declared fields of a variant file, in declaration order,
// and the sample names in column order.
type Header struct {
	Infos       []HeaderField
	Filters     []HeaderField
	Formats     []HeaderField
	SampleNames []string
}

// Fields lists every field declared under category c.
func (h *Header) Fields(c Category) []HeaderField {
	switch c {
	case CategoryInfo:
		return h.Infos
	case CategoryFilter:
		return h.Filters
	case CategoryFormat:
		return h.Formats
	}
	return nil
}

// Lookup finds the declaration of id under category c.
func (h *Header) Lookup(c Category, id string) (HeaderField, bool) {
	for _, f := range h.Fields(c) {
		if f.ID == id {
			return f, true
		}
	}
	return HeaderField{}, false
}

func (h *Header) add(f HeaderField) {
	// Later declarations of the same ID replace earlier ones
	fields := h.Fields(f.Category)
	for i := range fields {
		if fields[i].ID == f.ID {
			fields[i] = f
			return
		}
	}

	switch f.Category {
	case CategoryInfo:
		h.Infos = append(h.Infos, f)
	case CategoryFilter:
		h.Filters = append(h.Filters, f)
	case CategoryFormat:
		h.Formats = append(h.Formats, f)
	}
}

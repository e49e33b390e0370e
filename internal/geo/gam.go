package geo

// Table maps normalized province names to the set of cantons that belong to
// the Greater Metropolitan Area (GAM). It is built once at startup and never
// mutated afterwards, so concurrent lookups need no locking.
type Table struct {
	provinces map[string]map[string]struct{}
}

// NewTable builds an immutable lookup table from raw reference data. Keys and
// values are normalized on the way in so callers can supply human-readable
// names with accents and mixed case.
func NewTable(data map[string][]string) *Table {
	provinces := make(map[string]map[string]struct{}, len(data))
	for province, cantons := range data {
		key := Normalize(province)
		if key == "" {
			continue
		}
		set := make(map[string]struct{}, len(cantons))
		for _, canton := range cantons {
			if name := Normalize(canton); name != "" {
				set[name] = struct{}{}
			}
		}
		provinces[key] = set
	}
	return &Table{provinces: provinces}
}

// DefaultTable returns the GAM canton list. Address forms commonly submit the
// capital canton of each province as "Central", so that alias is listed next
// to the proper canton name.
func DefaultTable() *Table {
	return NewTable(map[string][]string{
		"San José": {
			"Central", "San José", "Escazú", "Desamparados", "Aserrí", "Mora",
			"Goicoechea", "Santa Ana", "Alajuelita", "Vázquez de Coronado",
			"Tibás", "Moravia", "Montes de Oca", "Curridabat",
		},
		"Alajuela": {
			"Central", "Alajuela", "Atenas", "Poás",
		},
		"Cartago": {
			"Central", "Cartago", "Paraíso", "La Unión", "Alvarado",
			"Oreamuno", "El Guarco",
		},
		"Heredia": {
			"Central", "Heredia", "Barva", "Santo Domingo", "Santa Bárbara",
			"San Rafael", "San Isidro", "Belén", "Flores", "San Pablo",
		},
	})
}

// IsGAM reports whether the province/canton pair falls inside the Greater
// Metropolitan Area. Empty inputs and unknown names classify as outside the
// GAM, which routes them to the higher rest-of-country tariff rather than an
// error.
func (t *Table) IsGAM(province, canton string) bool {
	if t == nil {
		return false
	}
	p := Normalize(province)
	c := Normalize(canton)
	if p == "" || c == "" {
		return false
	}
	cantons, ok := t.provinces[p]
	if !ok {
		return false
	}
	_, ok = cantons[c]
	return ok
}

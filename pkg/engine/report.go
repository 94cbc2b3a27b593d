package engine

// Section is one named block of report data, keyed into the value tree by
// its identifier.
type Section struct {
	ID   string
	Data map[string]any
}

// Report is a structured regulatory report: identity plus its sections.
// Field paths resolve with the section identifier as the first segment.
type Report struct {
	ID              string
	Type            string
	InstitutionCode string
	Sections        []Section
}

// Tree builds the tagged value tree over the report's sections. Later
// sections with a duplicate identifier supersede earlier ones.
func (r Report) Tree() Value {
	children := make(map[string]Value, len(r.Sections))
	for _, s := range r.Sections {
		children[s.ID] = FromAny(map[string]any(s.Data))
	}
	return Object(children)
}

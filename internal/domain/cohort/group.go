package cohort

import "strings"

const DescriptionFormatHTML = 1

type Group struct {
	ID                int64
	ContextID         int64
	ExternalID        string
	Name              string
	Description       string
	DescriptionFormat int
	Component         string
}

func NewGroup(externalID, name, description string) (Group, error) {
	if strings.TrimSpace(externalID) == "" {
		return Group{}, ErrInvalidGroupExternalID
	}

	return Group{
		ExternalID:        externalID,
		Name:              name,
		Description:       description,
		DescriptionFormat: DescriptionFormatHTML,
	}, nil
}

// Relabel overwrites the display attributes. Repeated rows for the same group
// are applied in order, so the last one processed wins.
func (g *Group) Relabel(name, description string) {
	g.Name = name
	g.Description = description
	g.DescriptionFormat = DescriptionFormatHTML
}

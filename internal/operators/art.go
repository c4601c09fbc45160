package operators

import (
	"fmt"
	"sort"
)

const (
	ArtElite1 = "Elite 1"
	ArtElite2 = "Elite 2"
	ArtNone   = "None"
)

// ArtChoices lists the selectable artwork labels: the promotion arts the
// operator has, its skins by name, then None.
func (o Operator) ArtChoices() []string {
	choices := []string{ArtElite1}
	if o.Elite2 != "" {
		choices = append(choices, ArtElite2)
	}
	skins := make([]string, 0, len(o.Skins))
	for name := range o.Skins {
		skins = append(skins, name)
	}
	sort.Strings(skins)
	choices = append(choices, skins...)
	return append(choices, ArtNone)
}

// ForegroundChoices is ArtChoices without None.
func (o Operator) ForegroundChoices() []string {
	c := o.ArtChoices()
	return c[:len(c)-1]
}

// ArtURL maps a choice label to its artwork URL. None maps to "".
func (o Operator) ArtURL(choice string) (string, error) {
	switch choice {
	case ArtNone:
		return "", nil
	case ArtElite1:
		return o.Elite1, nil
	case ArtElite2:
		if o.Elite2 == "" {
			return "", fmt.Errorf("%s has no %s art", o.Name, ArtElite2)
		}
		return o.Elite2, nil
	}
	if u, ok := o.Skins[choice]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%s has no art named %q", o.Name, choice)
}

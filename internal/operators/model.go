package operators

// Operator is the scraped metadata for one character.
type Operator struct {
	Name   string            `json:"original_name"`
	NameCN string            `json:"name_cn,omitempty"`
	URL    string            `json:"url,omitempty"`
	Rarity int               `json:"rarity"`
	Elite1 string            `json:"Elite 1"`
	Elite2 string            `json:"Elite 2"`
	Skins  map[string]string `json:"skins"`
	Color  string            `json:"color,omitempty"`
}

// Roster maps operator names to their records.
type Roster map[string]Operator

package operators

import "testing"

func TestFilter(t *testing.T) {
	r := Roster{
		"Ch'en":     {Name: "Ch'en", NameCN: "陈", Rarity: 6},
		"SilverAsh": {Name: "SilverAsh", NameCN: "银灰", Rarity: 6},
		"Castle-3":  {Name: "Castle-3", Rarity: 1},
		"Amiya":     {Name: "Amiya", NameCN: "阿米娅", Rarity: 5},
	}

	tests := []struct {
		name string
		opt  FilterOptions
		want []string
	}{
		{"all sorted", FilterOptions{}, []string{"Amiya", "Castle-3", "Ch'en", "SilverAsh"}},
		{"six stars", FilterOptions{Rarities: []int{6}}, []string{"Ch'en", "SilverAsh"}},
		{"several rarities", FilterOptions{Rarities: []int{1, 5}}, []string{"Amiya", "Castle-3"}},
		{"free words", FilterOptions{FreeWords: "silver"}, []string{"SilverAsh"}},
		{"chinese name", FilterOptions{FreeWords: "银灰"}, []string{"SilverAsh"}},
		{"words and rarity", FilterOptions{Rarities: []int{1}, FreeWords: "ch"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(r, tt.opt)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d operators, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Name != tt.want[i] {
					t.Fatalf("position %d: got %s, want %s", i, got[i].Name, tt.want[i])
				}
			}
		})
	}
}

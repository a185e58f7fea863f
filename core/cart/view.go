package cart

import "context"

type Line struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
	LineTotal string `json:"lineTotal"`
}

type View struct {
	Items []Line `json:"items"`
	Count int    `json:"count"`
	Total string `json:"total"`
}

// Render reads the store and builds what the shopper sees. Callers render
// again after every mutation; nothing updates a View in place.
func Render(ctx context.Context, s *Store) View {
	return NewView(s.Load(ctx))
}

func NewView(items []Item) View {
	v := View{
		Items: make([]Line, 0, len(items)),
		Count: len(items),
		Total: Total(items).StringFixed(2),
	}
	for i, it := range items {
		v.Items = append(v.Items, Line{
			Index:     i,
			Name:      it.Name,
			Price:     it.Price.StringFixed(2),
			Quantity:  it.Quantity,
			Image:     it.Image,
			LineTotal: it.LineTotal().StringFixed(2),
		})
	}
	return v
}

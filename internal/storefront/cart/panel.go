package cart

import "strconv"

// Panel is the rendered state of the cart sidebar.
type Panel struct {
	Open         bool
	Empty        bool
	EmptyMessage string
	Rows         []Row
	Count        int
	Total        string
}

type Row struct {
	ID    int
	Image string
	Name  string
	Price string
	Qty   int
}

// Render builds the Panel from the current state and hands it to the view.
func (s *Store) Render() {
	if s.view == nil {
		return
	}
	s.view.Render(s.Panel())
}

func (s *Store) Panel() Panel {
	p := Panel{
		Open:  s.open,
		Empty: len(s.lines) == 0,
		Count: s.ItemCount(),
		Total: FormatBRL(s.Total()),
	}
	if p.Empty {
		p.EmptyMessage = EmptyMessage
		return p
	}
	p.Rows = make([]Row, len(s.lines))
	for i, l := range s.lines {
		p.Rows[i] = Row{
			ID:    l.ID,
			Image: l.Image,
			Name:  l.Name,
			Price: FormatBRL(l.Price.Decimal),
			Qty:   l.Qty,
		}
	}
	return p
}

// Badge is the item count as shown on the cart icon.
func (p Panel) Badge() string {
	return strconv.Itoa(p.Count)
}

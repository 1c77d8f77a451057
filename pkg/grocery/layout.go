package grocery

// BlockType tags a layout block as a section header or an item reference.
type BlockType string

const (
	BlockText   BlockType = "Text"
	BlockItemID BlockType = "GroceryItemId"
)

// UnknownValue marks a block to be skipped unconditionally regardless of type.
const UnknownValue = "unknown"

// LayoutBlock is one element of the ordered render layout.
type LayoutBlock struct {
	Value string    `json:"value"`
	Type  BlockType `json:"type"`
}

// List aggregates the item set with its render layout. Item order is
// irrelevant; layout order is the authoritative render order.
type List struct {
	Items  []Item        `json:"items"`
	Layout []LayoutBlock `json:"layout"`
}

// Row is one renderable line: either a section header or a resolved item.
type Row struct {
	Header string
	Item   *Item
}

// IsHeader reports whether the row is a section header.
func (r Row) IsHeader() bool {
	return r.Item == nil
}

// Find returns a pointer to the item with the given id, or nil. The pointer
// aliases the list's item set so mutations are visible to later resolution.
func (l *List) Find(id string) *Item {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return &l.Items[i]
		}
	}
	return nil
}

// Rows resolves the layout against the item set. Blocks carrying the unknown
// sentinel are skipped, Text blocks become headers, and item references that
// do not resolve are silently dropped. Item rows alias the item set, so
// re-resolving after a checked toggle reflects the new state.
func (l *List) Rows() []Row {
	rows := make([]Row, 0, len(l.Layout))
	for _, block := range l.Layout {
		if block.Value == UnknownValue {
			continue
		}
		switch block.Type {
		case BlockText:
			rows = append(rows, Row{Header: block.Value})
		case BlockItemID:
			if item := l.Find(block.Value); item != nil {
				rows = append(rows, Row{Item: item})
			}
		}
	}
	return rows
}

// FilterKind derives the per-kind view: the items whose kind matches, and the
// layout restricted to Text blocks plus references into the surviving items.
// Headers whose items are all filtered out are preserved.
func (l List) FilterKind(k Kind) List {
	items := make([]Item, 0, len(l.Items))
	ids := make(map[string]bool, len(l.Items))
	for _, item := range l.Items {
		if item.Kind == k {
			items = append(items, item)
			ids[item.ID] = true
		}
	}

	layout := make([]LayoutBlock, 0, len(l.Layout))
	for _, block := range l.Layout {
		if block.Type != BlockItemID || ids[block.Value] {
			layout = append(layout, block)
		}
	}

	return List{Items: items, Layout: layout}
}

// CheckedItems returns the items currently checked, for the batch delete.
func (l List) CheckedItems() []Item {
	var out []Item
	for _, item := range l.Items {
		if item.Checked {
			out = append(out, item)
		}
	}
	return out
}

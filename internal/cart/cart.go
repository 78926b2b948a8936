package cart

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/thejayadad/seafoodapp/internal/menu"
)

var ErrItemUnavailable = errors.New("item unavailable")

const maxNoteLength = 200

// Meta carries the chosen configuration of a line for display and for the
// payment processor description.
type Meta struct {
	Size        string            `json:"size,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	AddonIDs    []string          `json:"addonIds,omitempty"`
	AddonLabels map[string]string `json:"addonLabels,omitempty"`
	AddonPrices map[string]int64  `json:"addonPrices,omitempty"`
}

type Line struct {
	ID             string `json:"id"`
	MenuItemID     string `json:"menuItemId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Qty            int    `json:"qty"`
	ConfigKey      string `json:"configKey,omitempty"`
	Meta           *Meta  `json:"meta,omitempty"`
}

type Cart struct {
	Lines []Line `json:"lines"`
}

// NewLine builds a plain cart line from a catalog item.
func NewLine(it menu.Item, qty int) (Line, error) {
	if !it.IsAvailable {
		return Line{}, ErrItemUnavailable
	}
	if qty < 1 {
		qty = 1
	}
	return Line{
		ID:             uuid.NewString(),
		MenuItemID:     it.ID,
		Name:           it.Name,
		UnitPriceCents: it.PriceCents,
		Qty:            qty,
	}, nil
}

// NewConfiguredLine builds a line with a chosen size and add-ons. The unit
// price is the base price plus the size delta plus every selected add-on.
// The display name embeds the size, e.g. "Lobster Roll — Large".
func NewConfiguredLine(it menu.Item, qty int, size string, addonIDs []string, notes string) (Line, error) {
	line, err := NewLine(it, qty)
	if err != nil {
		return Line{}, err
	}

	if size == "" {
		size = "default"
	}
	notes = truncateNotes(strings.TrimSpace(notes))

	var sizeDelta int64
	for _, s := range it.Sizes {
		if s.Label == size {
			sizeDelta = s.DeltaCents
			break
		}
	}

	meta := &Meta{
		Size:        size,
		Notes:       notes,
		AddonLabels: map[string]string{},
		AddonPrices: map[string]int64{},
	}

	var addonsDelta int64
	for _, id := range addonIDs {
		for _, a := range it.Addons {
			if a.ID == id {
				addonsDelta += a.PriceCents
				meta.AddonIDs = append(meta.AddonIDs, a.ID)
				meta.AddonLabels[a.ID] = a.Label
				meta.AddonPrices[a.ID] = a.PriceCents
				break
			}
		}
	}

	line.Name = it.Name + " — " + size
	line.UnitPriceCents += sizeDelta + addonsDelta
	line.Meta = meta
	line.ConfigKey = ConfigKey(it.ID, size, meta.AddonIDs, notes)
	return line, nil
}

// truncateNotes caps notes at maxNoteLength runes so a multi-byte character
// is never cut in half.
func truncateNotes(notes string) string {
	runes := []rune(notes)
	if len(runes) > maxNoteLength {
		return string(runes[:maxNoteLength])
	}
	return notes
}

// ConfigKey identifies a line configuration so equal configurations collapse
// into one line. Add-on order does not matter.
func ConfigKey(menuItemID, size string, addonIDs []string, notes string) string {
	sorted := append([]string(nil), addonIDs...)
	sort.Strings(sorted)
	return menuItemID + "::size=" + size + "::addons=" + strings.Join(sorted, ",") + "::notes=" + strings.TrimSpace(notes)
}

// Add merges the line into the cart. A line with the same configuration has
// its quantity incremented; otherwise the line is prepended.
func (c *Cart) Add(line Line) {
	for i := range c.Lines {
		if sameConfig(c.Lines[i], line) {
			c.Lines[i].Qty += line.Qty
			return
		}
	}
	c.Lines = append([]Line{line}, c.Lines...)
}

func sameConfig(a, b Line) bool {
	if a.ConfigKey != "" || b.ConfigKey != "" {
		return a.ConfigKey == b.ConfigKey
	}
	return a.MenuItemID == b.MenuItemID
}

// SetQty sets the quantity of a line, clamped to at least 1.
// Unknown line ids are ignored.
func (c *Cart) SetQty(lineID string, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines[i].Qty = qty
			return
		}
	}
}

func (c *Cart) RemoveLine(lineID string) {
	kept := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ID != lineID {
			kept = append(kept, l)
		}
	}
	c.Lines = kept
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

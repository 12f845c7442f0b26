package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/theirongolddev/fleetbill/internal/model"
)

// Layout selects the shape of the bill's detail section.
type Layout string

const (
	// LayoutItems renders detail as an ordered array of per-vehicle objects.
	LayoutItems Layout = "items"
	// LayoutLegacy renders detail as one flat object with five keys per vehicle.
	LayoutLegacy Layout = "legacy"
)

// ParseLayout maps a config/flag value onto a Layout.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutItems:
		return LayoutItems, nil
	case LayoutLegacy:
		return LayoutLegacy, nil
	}
	return "", fmt.Errorf("invoice: unknown detail layout %q", s)
}

// Document is the JSON bill: {"bill": {...}}.
type Document struct {
	Bill Bill `json:"bill"`
}

// Bill holds the bill fields in output order.
type Bill struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Link        string `json:"link"`
	Detail      any    `json:"detail"`
	Description string `json:"description"`
	Summary     string `json:"summary"`
}

// DetailItem is one vehicle in the items layout.
type DetailItem struct {
	Asset               string      `json:"asset"`
	OdometerStartMetres float64     `json:"odometerStartMetres"`
	OdometerEndMetres   float64     `json:"odometerEndMetres"`
	DistanceMetres      float64     `json:"distanceMetres"`
	DistanceMiles       float64     `json:"distanceMiles"`
	Charge              json.Number `json:"charge"`
}

// NewDocument renders inv as a bill document in the given layout.
func NewDocument(inv model.Invoice, layout Layout) Document {
	var detail any
	if layout == LayoutLegacy {
		detail = legacyDetail(inv.Items)
	} else {
		detail = itemsDetail(inv.Items)
	}

	return Document{Bill: Bill{
		Title:       Title(inv),
		Subtitle:    Subtitle(inv),
		Link:        inv.Link,
		Detail:      detail,
		Description: Description(inv),
		Summary:     Summary(inv),
	}}
}

func itemsDetail(items []model.LineItem) []DetailItem {
	out := make([]DetailItem, 0, len(items))
	for _, it := range items {
		out = append(out, DetailItem{
			Asset:               it.LicensePlate,
			OdometerStartMetres: it.StartOdometerMeters,
			OdometerEndMetres:   it.EndOdometerMeters,
			DistanceMetres:      it.DistanceMeters,
			DistanceMiles:       it.DistanceMiles,
			Charge:              json.Number(it.Charge.StringFixed(2)),
		})
	}
	return out
}

// OrderedDetail is a JSON object whose keys keep insertion order.
type OrderedDetail struct {
	keys   []string
	values []any
}

// Add appends a key/value pair.
func (d *OrderedDetail) Add(key string, value any) {
	d.keys = append(d.keys, key)
	d.values = append(d.values, value)
}

// Keys returns the keys in insertion order.
func (d *OrderedDetail) Keys() []string { return d.keys }

// Len returns the number of entries.
func (d *OrderedDetail) Len() int { return len(d.keys) }

// MarshalJSON writes the entries as an object in insertion order.
func (d *OrderedDetail) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(d.values[i])
		if err != nil {
			return nil, fmt.Errorf("invoice: encoding %s: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func legacyDetail(items []model.LineItem) *OrderedDetail {
	d := &OrderedDetail{}
	for _, it := range items {
		id := it.LicensePlate
		d.Add("Asset:"+id, "OStart/metres:"+formatMetres(it.StartOdometerMeters))
		d.Add("Asset1:"+id, "OStop/metres:"+formatMetres(it.EndOdometerMeters))
		d.Add("DistanceMetres:"+id, it.DistanceMeters)
		d.Add("DistanceMiles:"+id, it.DistanceMiles)
		d.Add("ChargePerVehicle:"+id, json.Number(it.Charge.StringFixed(2)))
	}
	return d
}

func formatMetres(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}

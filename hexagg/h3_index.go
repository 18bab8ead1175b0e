package hexagg

import (
	"fmt"

	"ft-server/models"

	"github.com/uber/h3-go/v4"
)

// H3Index implements Index over Uber's H3 grid.
type H3Index struct{}

func NewH3Index() *H3Index {
	return &H3Index{}
}

func parseCell(cell string) (h3.Cell, error) {
	c := h3.Cell(h3.IndexFromString(cell))
	if !c.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCell, cell)
	}
	return c, nil
}

func toLngLat(ll h3.LatLng) models.LngLat {
	return models.LngLat{ll.Lng, ll.Lat}
}

func (H3Index) CellFor(lat, lng float64, res int) (string, error) {
	if err := ValidateResolution(res); err != nil {
		return "", err
	}
	return h3.LatLngToCell(h3.NewLatLng(lat, lng), res).String(), nil
}

func (H3Index) Center(cell string) (models.LngLat, error) {
	c, err := parseCell(cell)
	if err != nil {
		return models.LngLat{}, err
	}
	return toLngLat(c.LatLng()), nil
}

func (H3Index) Boundary(cell string) ([]models.LngLat, error) {
	c, err := parseCell(cell)
	if err != nil {
		return nil, err
	}
	b := c.Boundary()
	out := make([]models.LngLat, len(b))
	for i, ll := range b {
		out[i] = toLngLat(ll)
	}
	return out, nil
}

func (H3Index) Disk(cell string, k int) ([]string, error) {
	c, err := parseCell(cell)
	if err != nil {
		return nil, err
	}
	disk := h3.GridDisk(c, k)
	out := make([]string, len(disk))
	for i, d := range disk {
		out[i] = d.String()
	}
	return out, nil
}

func (idx H3Index) Neighbors(cell string) ([]string, error) {
	disk, err := idx.Disk(cell, 1)
	if err != nil {
		return nil, err
	}
	out := disk[:0]
	for _, d := range disk {
		if d != cell {
			out = append(out, d)
		}
	}
	return out, nil
}

func (H3Index) AreaM2(cell string) (float64, error) {
	c, err := parseCell(cell)
	if err != nil {
		return 0, err
	}
	return h3.CellAreaM2(c), nil
}

func (H3Index) Resolution(cell string) (int, error) {
	c, err := parseCell(cell)
	if err != nil {
		return 0, err
	}
	return c.Resolution(), nil
}

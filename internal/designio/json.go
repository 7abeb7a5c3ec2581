package designio

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/helix-bio/formulation-cli/internal/model"
)

// designWire mirrors model.Design with pointer required fields so that
// absent keys are distinguishable from explicit zeros.
type designWire struct {
	Name          string   `json:"name"`
	Size          *float64 `json:"size_nm"`
	Charge        *float64 `json:"charge_mv"`
	Encapsulation *float64 `json:"encapsulation_pct"`

	PDI              *float64 `json:"pdi"`
	HydrodynamicSize *float64 `json:"hydrodynamic_nm"`
	Stability        *float64 `json:"stability_pct"`
	SurfaceArea      *float64 `json:"surface_area"`
	DegradationTime  *float64 `json:"degradation_days"`
	Material         string   `json:"material"`
}

func (w designWire) toDesign() (model.Design, error) {
	var missing []string
	if w.Size == nil {
		missing = append(missing, "size_nm")
	}
	if w.Charge == nil {
		missing = append(missing, "charge_mv")
	}
	if w.Encapsulation == nil {
		missing = append(missing, "encapsulation_pct")
	}
	if len(missing) > 0 {
		return model.Design{}, eris.Errorf("designio: missing required parameter: %s", strings.Join(missing, ", "))
	}

	d := model.Design{
		Name:             w.Name,
		Size:             *w.Size,
		Charge:           *w.Charge,
		Encapsulation:    *w.Encapsulation,
		PDI:              w.PDI,
		HydrodynamicSize: w.HydrodynamicSize,
		Stability:        w.Stability,
		SurfaceArea:      w.SurfaceArea,
		DegradationTime:  w.DegradationTime,
		Material:         w.Material,
	}
	if err := d.Validate(); err != nil {
		return model.Design{}, err
	}
	return d, nil
}

// DecodeDesign reads a single design from JSON, enforcing the
// required-field invariant.
func DecodeDesign(r io.Reader) (model.Design, error) {
	var w designWire
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return model.Design{}, eris.Wrap(err, "designio: decode design json")
	}
	return w.toDesign()
}

// DecodeDesigns reads a JSON array of designs.
func DecodeDesigns(r io.Reader) ([]model.Design, error) {
	var wires []designWire
	if err := json.NewDecoder(r).Decode(&wires); err != nil {
		return nil, eris.Wrap(err, "designio: decode designs json")
	}
	if len(wires) == 0 {
		return nil, eris.New("designio: no designs in input")
	}

	designs := make([]model.Design, 0, len(wires))
	for i, w := range wires {
		d, err := w.toDesign()
		if err != nil {
			return nil, eris.Wrapf(err, "designio: design %d", i)
		}
		designs = append(designs, d)
	}
	return designs, nil
}

func readDesignsJSONFile(path string) ([]model.Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "designio: read %s", path)
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return DecodeDesigns(bytes.NewReader(data))
	}

	d, err := DecodeDesign(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return []model.Design{d}, nil
}

// ReadDesignsFile loads designs from a file, dispatching on extension:
// .json (single design or array), .csv, or .xlsx.
func ReadDesignsFile(path string) ([]model.Design, error) {
	switch {
	case strings.HasSuffix(path, ".csv"):
		return ParseDesignsCSV(path)
	case strings.HasSuffix(path, ".xlsx"):
		return ReadDesignsXLSX(path, XLSXOptions{})
	case strings.HasSuffix(path, ".json"):
		return readDesignsJSONFile(path)
	default:
		return nil, eris.Errorf("designio: unsupported input format %q (want .json, .csv, or .xlsx)", path)
	}
}

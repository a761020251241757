// Package names resolves area and object codes to display names for minimap labels.
// The tables ship as a gettext catalog where the msgctxt selects the table and
// the msgid is the decimal code.
package names

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"github.com/leonelquinteros/gotext"
)

const (
	areaContext   = "area"
	objectContext = "object"

	// WaypointLabel replaces every waypoint variant's name on the map.
	WaypointLabel = "Waypoint"
)

//go:embed names.po
var defaultCatalog []byte

// Tables looks up display names. A code missing from the catalog resolves to
// its decimal form, so a lookup never fails.
type Tables struct {
	po *gotext.Po
}

// Default returns the tables built from the embedded catalog.
func Default() *Tables {
	return Parse(defaultCatalog)
}

// Parse builds tables from a gettext .po document.
func Parse(catalog []byte) *Tables {
	po := gotext.NewPo()
	po.Parse(catalog)
	return &Tables{po: po}
}

// Load builds tables from a .po file on disk.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data), nil
}

// Area returns the name of an area code.
func (t *Tables) Area(id int) string {
	return t.lookup(areaContext, id)
}

// Object returns the name of an object code.
func (t *Tables) Object(id int) string {
	return t.lookup(objectContext, id)
}

// ObjectLabel returns the text drawn next to an object. All waypoint variants
// share one label.
func (t *Tables) ObjectLabel(id int) string {
	name := t.Object(id)
	if strings.Contains(name, WaypointLabel) {
		return WaypointLabel
	}
	return name
}

func (t *Tables) lookup(ctx string, id int) string {
	key := strconv.Itoa(id)
	if t == nil || t.po == nil {
		return key
	}
	name := t.po.GetC(key, ctx)
	if name == "" {
		return key
	}
	return name
}

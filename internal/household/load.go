package household

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/period"
)

type fileResident struct {
	Name   string      `toml:"name"`
	Start  period.Date `toml:"start"`
	End    period.Date `toml:"end"`
	Exempt []string    `toml:"exempt"`
}

type file struct {
	Name       string         `toml:"name"`
	Start      period.Date    `toml:"start"`
	End        period.Date    `toml:"end"`
	Categories []string       `toml:"categories"`
	Residents  []fileResident `toml:"resident"`
}

// Load reads and validates a household TOML file.
func Load(path string) (*Household, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening household file: %w", err)
	}
	defer f.Close()

	h, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return h, nil
}

// Decode parses household TOML. When no categories are listed the default catalog is used.
func Decode(r io.Reader) (*Household, error) {
	var raw file

	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("decoding household: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	catalog := expense.DefaultCatalog()
	if len(raw.Categories) > 0 {
		catalog, err = expense.NewCatalog(raw.Categories...)
		if err != nil {
			return nil, fmt.Errorf("categories: %w", err)
		}
	}

	h := &Household{
		Name:       strings.TrimSpace(raw.Name),
		Period:     period.New(raw.Start, raw.End),
		Categories: catalog,
		Residents:  make([]Resident, 0, len(raw.Residents)),
	}

	for _, fr := range raw.Residents {
		res := Resident{
			Name:   ResidentName(strings.TrimSpace(fr.Name)),
			Period: period.New(fr.Start, fr.End),
		}

		for _, e := range fr.Exempt {
			c, err := catalog.Parse(e)
			if err != nil {
				return nil, fmt.Errorf("resident %q exempt: %w", res.Name, err)
			}

			res.Exempt = append(res.Exempt, c)
		}

		h.Residents = append(h.Residents, res)
	}

	if err := h.Validate(); err != nil {
		return nil, err
	}

	return h, nil
}

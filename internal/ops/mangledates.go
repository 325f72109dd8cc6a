package ops

import (
	"regexp"
	"strconv"

	"dj/internal/config"
)

// MangleDates recognizes dates embedded in an entry and emits a set of
// alternative numeric renderings of the same date. German "dd.mm.yy"
// layouts are tried first, then English "mm/dd/yy". Grounded on
// operations/mangle_dates.py.
type MangleDates struct{ noop }

func (MangleDates) Name() string       { return "mangle_dates" }
func (MangleDates) Category() Category { return CategoryTransformer }

var (
	startYear20th = 75
	endYear21st   = 25
)

func init() {
	config.Default.RegisterInt("MangleDates", "START_YEAR_20TH", &startYear20th)
	config.Default.RegisterInt("MangleDates", "END_YEAR_21ST", &endYear21st)
}

var (
	reGermanDate  = regexp.MustCompile(`^[^0-9]*([0-9]{1,2})\.?([0-9]{1,2})\.?(19|20)?([0-9]{2})`)
	reEnglishDate = regexp.MustCompile(`^[^0-9]*([0-9]{1,2})[/-]?([0-9]{1,2})[/-]?(19|20)?([0-9]{2})`)
)

func (MangleDates) Init() error {
	if endYear21st >= startYear20th {
		return initErrorf("mangle_dates", "19%d has to be < 20%d", startYear20th, endYear21st)
	}
	return nil
}

func (MangleDates) Process(e string) []string {
	var d, m, c, y string
	if g := reGermanDate.FindStringSubmatch(e); g != nil {
		d, m, c, y = g[1], g[2], g[3], g[4]
	} else if g := reEnglishDate.FindStringSubmatch(e); g != nil {
		m, d, c, y = g[1], g[2], g[3], g[4]
	} else {
		return nil
	}

	di, _ := strconv.Atoi(d)
	mi, _ := strconv.Atoi(m)
	yi, _ := strconv.Atoi(y)

	if di > 31 || di == 0 || mi > 12 || mi == 0 || (yi > endYear21st && yi < startYear20th) {
		return []string{}
	}

	full := c + y
	if c == "" {
		if yi <= endYear21st {
			full = "20" + y
		} else {
			full = "19" + y
		}
	}

	mangled := []string{d + m + y, y, full}

	switch {
	case len(d) == 1 && len(m) == 1:
		mangled = append(mangled, "0"+d+"0"+m+full, "0"+d+"0"+m+y, "0"+m+"0"+d)
	case len(d) == 1:
		mangled = append(mangled, "0"+d+m+full, "0"+d+m+y, m+"0"+d)
	case len(m) == 1:
		mangled = append(mangled, d+"0"+m+full, d+"0"+m+y, "0"+m+d)
	default:
		mangled = append(mangled, d+m+full, d+m+y)
	}

	return mangled
}

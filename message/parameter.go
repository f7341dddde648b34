package message

import (
	"fmt"

	"github.com/mmp/marskit/tables"
)

// ParameterID uniquely identifies a GRIB2 parameter using WMO standard
// codes: discipline, category, and number (WMO Manual 306, Tables 0.0,
// 4.1, 4.2).
type ParameterID struct {
	Discipline uint8
	Category   uint8
	Number     uint8
}

// String returns the full parameter name from WMO tables.
func (p ParameterID) String() string {
	return tables.GetParameterName(int(p.Discipline), int(p.Category), int(p.Number))
}

var paramShortNames = map[string]string{
	"0.0.0": "TMP", "0.0.6": "DPT", "0.0.15": "VPTMP", "0.0.17": "SKINT",
	"0.1.0": "SPFH", "0.1.1": "RH", "0.1.3": "PWAT", "0.1.8": "APCP",
	"0.1.11": "SNOD", "0.1.13": "WEASD", "0.1.22": "CLWMR", "0.1.23": "ICMR",
	"0.1.24": "RWMR", "0.1.25": "SNMR",
	"0.2.0": "WDIR", "0.2.1": "WIND", "0.2.2": "UGRD", "0.2.3": "VGRD",
	"0.2.8": "VVEL", "0.2.9": "DZDT", "0.2.10": "ABSV", "0.2.11": "ABSD",
	"0.2.12": "RELV", "0.2.13": "RELD", "0.2.14": "PVORT",
	"0.3.0": "PRES", "0.3.1": "PRMSL", "0.3.3": "ICAHT", "0.3.4": "GP",
	"0.3.5": "HGT", "0.3.6": "DIST", "0.3.9": "HPBL",
	"0.6.1": "TCDC", "0.6.3": "LCDC", "0.6.4": "MCDC", "0.6.5": "HCDC",
	"0.6.6": "CWAT", "0.6.32": "GRLE",
	"0.7.0": "PLI", "0.7.6": "CAPE", "0.7.7": "CIN", "0.7.8": "HLCY",
	"0.10.0": "REFZR", "0.10.3": "REFD", "0.10.6": "REFC",
}

// ShortName returns a wgrib2-compatible abbreviation for the parameter, or
// "" if none is registered.
func (p ParameterID) ShortName() string {
	return paramShortNames[fmt.Sprintf("%d.%d.%d", p.Discipline, p.Category, p.Number)]
}

// CategoryName returns the parameter category name.
func (p ParameterID) CategoryName() string {
	return tables.GetParameterCategoryName(int(p.Discipline), int(p.Category))
}

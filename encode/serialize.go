package encode

import (
	"fmt"
	"math"

	"github.com/mmp/marskit/internal"
)

// optLong reads a Dict integer key, falling back to def when absent.
func optLong(d Dict, key string, def int64) int64 {
	if v, ok := d.GetOptLong(key); ok {
		return v
	}
	return def
}

func optString(d Dict, key, def string) string {
	if s, err := d.GetString(key); err == nil {
		return s
	}
	return def
}

// serialize renders a fully populated output dictionary plus its numeric
// payload into wire-format GRIB2 bytes: sections 0, 1, optionally 2, 3,
// 4, 5, 6, 7, and the "7777" end marker. Section lengths are backfilled
// once each section's body is known, mirroring section/section*.go's
// length-prefixed framing on the decode side.
func serialize(out Dict, payload []float64) ([]byte, error) {
	w := internal.NewWriter()

	w.String("GRIB")
	w.Uint16(0) // reserved
	w.Uint8(uint8(optLong(out, "discipline", 0)))
	w.Uint8(2) // edition
	lengthOffset := w.Len()
	w.Uint64(0) // total length placeholder, patched below

	writeSection1(w, out)

	if v, ok := out.GetOptLong("setLocalDefinition"); ok && v != 0 {
		if err := writeSection2(w, out); err != nil {
			return nil, fmt.Errorf("serializing section 2: %w", err)
		}
	}

	if err := writeSection3(w, out); err != nil {
		return nil, fmt.Errorf("serializing section 3: %w", err)
	}
	if err := writeSection4(w, out); err != nil {
		return nil, fmt.Errorf("serializing section 4: %w", err)
	}

	ref, nbits, binScale, decScale, packed, err := packSimple(payload)
	if err != nil {
		return nil, fmt.Errorf("packing data section: %w", err)
	}
	writeSection5(w, len(payload), ref, nbits, binScale, decScale)
	writeSection6(w)
	writeSection7(w, packed)

	w.String("7777")

	if err := w.PatchUint64(lengthOffset, uint64(w.Len())); err != nil {
		return nil, fmt.Errorf("patching section 0 length: %w", err)
	}

	return w.Bytes(), nil
}

func writeSection1(w *internal.Writer, out Dict) {
	start := w.Len()
	w.Uint32(0) // length placeholder
	w.Uint8(1)  // section number
	w.Uint16(uint16(optLong(out, "centre", 98)))
	w.Uint16(uint16(optLong(out, "subCentre", 0)))
	w.Uint8(uint8(optLong(out, "tablesVersion", 31)))
	w.Uint8(uint8(optLong(out, "localTablesVersion", 1)))
	w.Uint8(uint8(optLong(out, "significanceOfReferenceTime", 1)))
	w.Uint16(uint16(optLong(out, "year", 1970)))
	w.Uint8(uint8(optLong(out, "month", 1)))
	w.Uint8(uint8(optLong(out, "day", 1)))
	w.Uint8(uint8(optLong(out, "hour", 0)))
	w.Uint8(uint8(optLong(out, "minute", 0)))
	w.Uint8(uint8(optLong(out, "second", 0)))
	w.Uint8(uint8(optLong(out, "productionStatusOfProcessedData", 0)))
	w.Uint8(uint8(optLong(out, "typeOfProcessedData", 1)))
	w.PatchUint32(start, uint32(w.Len()-start))
}

func writeSection2(w *internal.Writer, out Dict) error {
	start := w.Len()
	w.Uint32(0)
	w.Uint8(2)
	w.Uint8(uint8(optLong(out, "localDefinitionNumber", 1)))
	w.Uint8(uint8(optLong(out, "productionStatusOfProcessedData", 12)))
	dataset := optString(out, "dataset", "")
	w.Uint8(uint8(len(dataset)))
	w.String(dataset)
	return w.PatchUint32(start, uint32(w.Len()-start))
}

func writeSection3(w *internal.Writer, out Dict) error {
	start := w.Len()
	w.Uint32(0)
	w.Uint8(3)
	w.Uint8(uint8(optLong(out, "sourceOfGridDefinition", 0)))
	w.Uint32(uint32(optLong(out, "numberOfDataPoints", 0)))
	w.Uint8(0) // no optional list
	w.Uint8(0)
	template := optLong(out, "gridDefinitionTemplateNumber", 0)
	w.Uint16(uint16(template))

	switch template {
	case 50:
		writeSpectralGrid(w, out)
	default:
		writeLatLonGrid(w, out)
	}
	return w.PatchUint32(start, uint32(w.Len()-start))
}

// writeLatLonGrid writes Template 3.0 (regular lat/lon grid), matching
// the field order grid.ParseLatLonGrid reads, padded to the 72-byte
// minimum body length section/section3.go's parser expects.
func writeLatLonGrid(w *internal.Writer, out Dict) {
	bodyStart := w.Len()
	w.Uint8(6) // shape of the earth: spherical, radius 6371229 m
	w.Uint8(0)
	w.Uint32(0)
	w.Uint8(0)
	w.Uint32(0)
	w.Uint8(0)
	w.Uint32(0)
	w.Uint32(uint32(optLong(out, "Ni", 0)))
	w.Uint32(uint32(optLong(out, "Nj", 0)))
	w.Uint32(0) // basic angle
	w.Uint32(0) // subdivisions
	w.Int32(int32(optLong(out, "latitudeOfFirstGridPoint", 0)))
	w.Int32(int32(optLong(out, "longitudeOfFirstGridPoint", 0)))
	w.Uint8(uint8(optLong(out, "resolutionAndComponentFlags", 0)))
	w.Int32(int32(optLong(out, "latitudeOfLastGridPoint", 0)))
	w.Int32(int32(optLong(out, "longitudeOfLastGridPoint", 0)))
	w.Uint32(uint32(optLong(out, "iDirectionIncrement", 0)))
	w.Uint32(uint32(optLong(out, "jDirectionIncrement", 0)))
	w.Uint8(uint8(optLong(out, "scanningMode", 0)))
	for w.Len()-bodyStart < 72 {
		w.Uint8(0)
	}
}

// writeSpectralGrid writes Template 3.50 (spherical harmonics), used by
// the DestinE/climate-dt triangular-truncation configuration.
func writeSpectralGrid(w *internal.Writer, out Dict) {
	w.Uint32(uint32(optLong(out, "J", 0)))
	w.Uint32(uint32(optLong(out, "K", 0)))
	w.Uint32(uint32(optLong(out, "M", 0)))
	w.Uint8(uint8(optLong(out, "gridDefinitionTemplateNumberSpectral", 1)))
}

func writeSection4(w *internal.Writer, out Dict) error {
	start := w.Len()
	w.Uint32(0)
	w.Uint8(4)
	w.Uint16(0) // no coordinate values
	template := optLong(out, "productDefinitionTemplateNumber", 0)
	w.Uint16(uint16(template))

	w.Uint8(uint8(optLong(out, "parameterCategory", 0)))
	w.Uint8(uint8(optLong(out, "parameterNumber", 0)))
	w.Uint8(uint8(optLong(out, "typeOfGeneratingProcess", 0)))
	w.Uint8(uint8(optLong(out, "backgroundProcess", 0)))
	w.Uint8(uint8(optLong(out, "generatingProcessIdentifier", 0)))
	w.Uint16(0) // hours after cutoff
	w.Uint8(0)  // minutes after cutoff
	w.Uint8(uint8(optLong(out, "indicatorOfUnitOfTimeRange", 1)))
	w.Uint32(uint32(optLong(out, "forecastTime", 0)))
	w.Uint8(uint8(optLong(out, "typeOfFirstFixedSurface", 1)))
	w.Uint8(0)
	w.Uint32(uint32(optLong(out, "scaledValueOfFirstFixedSurface", 0)))
	w.Uint8(255) // no second fixed surface
	w.Uint8(0)
	w.Uint32(0)

	if template == 8 || template == 11 {
		writeStatisticalProcessing(w, out)
	}

	return w.PatchUint32(start, uint32(w.Len()-start))
}

// writeStatisticalProcessing appends Template 4.8's time-range fields
// after its shared Template 4.0 prefix, used when the statistics concept
// has selected an accumulation/average/extreme variant.
func writeStatisticalProcessing(w *internal.Writer, out Dict) {
	w.Uint16(uint16(optLong(out, "year", 1970)))
	w.Uint8(uint8(optLong(out, "month", 1)))
	w.Uint8(uint8(optLong(out, "day", 1)))
	w.Uint8(uint8(optLong(out, "hour", 0)))
	w.Uint8(uint8(optLong(out, "minute", 0)))
	w.Uint8(uint8(optLong(out, "second", 0)))
	w.Uint8(1) // number of time ranges
	w.Uint32(0) // missing values
	w.Uint8(uint8(optLong(out, "typeOfStatisticalProcessing", 0)))
	w.Uint8(2) // type of time increment: successive times, same forecast time
	w.Uint8(uint8(optLong(out, "indicatorOfUnitForTimeRange", 1)))
	w.Uint32(uint32(optLong(out, "lengthOfTimeRange", 0)))
	w.Uint8(1)
	w.Uint32(0)
}

func writeSection5(w *internal.Writer, numValues int, ref float32, nbits uint8, binScale, decScale int16) {
	start := w.Len()
	w.Uint32(0)
	w.Uint8(5)
	w.Uint32(uint32(numValues))
	w.Uint16(0) // simple packing
	w.Float32(ref)
	w.Int16(binScale)
	w.Int16(decScale)
	w.Uint8(nbits)
	w.Uint8(0) // original field type: floating point
	w.PatchUint32(start, uint32(w.Len()-start))
}

func writeSection6(w *internal.Writer) {
	start := w.Len()
	w.Uint32(0)
	w.Uint8(6)
	w.Uint8(255) // no bitmap applies
	w.PatchUint32(start, uint32(w.Len()-start))
}

func writeSection7(w *internal.Writer, packed []byte) {
	start := w.Len()
	w.Uint32(0)
	w.Uint8(7)
	w.Raw(packed)
	w.PatchUint32(start, uint32(w.Len()-start))
}

// packSimple implements GRIB2 Template 5.0 (simple packing): values are
// linearly scaled against their minimum and packed as n-bit unsigned
// integers, following data/template50.go's decoding formula in
// reverse (value = (R + X*2^E) / 10^D, here with E=D=0 so X = value-R).
func packSimple(payload []float64) (ref float32, nbits uint8, binScale, decScale int16, packed []byte, err error) {
	if len(payload) == 0 {
		return 0, 0, 0, 0, nil, nil
	}

	min, max := payload[0], payload[0]
	for _, v := range payload {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	span := max - min
	switch {
	case span <= 0:
		nbits = 0
	default:
		n := math.Ceil(math.Log2(span + 1))
		if n < 1 {
			n = 1
		}
		if n > 24 {
			n = 24
		}
		nbits = uint8(n)
	}

	bw := internal.NewBitWriter()
	if nbits > 0 {
		maxX := uint64(1)<<nbits - 1
		for _, v := range payload {
			x := uint64(math.Round(v - min))
			if x > maxX {
				x = maxX
			}
			if err := bw.WriteBits(x, int(nbits)); err != nil {
				return 0, 0, 0, 0, nil, err
			}
		}
	}
	bw.Align()

	return float32(min), nbits, 0, 0, bw.Bytes(), nil
}

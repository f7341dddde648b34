package message

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/mmp/marskit/grid"
	"github.com/mmp/marskit/product"
	"github.com/mmp/marskit/tables"
)

// GRIB2 is a single decoded meteorological field: values, coordinates,
// and metadata extracted from one GRIB2 message.
type GRIB2 struct {
	Data       []float64
	Latitudes  []float64
	Longitudes []float64

	Discipline       string
	Center           string
	ReferenceTime    time.Time
	ProductionStatus string
	DataType         string

	Parameter ParameterID

	Level      string
	LevelValue float64

	GridType  string
	GridNi    int
	GridNj    int
	NumPoints int

	message *GRIB2Message
}

// Read parses every GRIB2 message in r and decodes them into GRIB2
// fields, in parallel by default. Use ReadWithOptions to control
// parallelism or apply filters.
func Read(r io.ReadSeeker) ([]*GRIB2, error) {
	return ReadWithOptions(r)
}

type gridKey struct {
	templateNumber uint16
	numDataPoints  uint32
	nx, ny         uint32
}

func createGridKey(msg *GRIB2Message) (gridKey, bool) {
	if msg.Section3 == nil || msg.Section3.Grid == nil {
		return gridKey{}, false
	}
	var nx, ny uint32
	switch g := msg.Section3.Grid.(type) {
	case *grid.LambertConformalGrid:
		nx, ny = g.Nx, g.Ny
	case *grid.LatLonGrid:
		nx, ny = g.Ni, g.Nj
	default:
		return gridKey{}, false
	}
	return gridKey{
		templateNumber: msg.Section3.TemplateNumber,
		numDataPoints:  msg.Section3.NumDataPoints,
		nx:             nx, ny: ny,
	}, true
}

type coordinateCache struct {
	latitudes, longitudes []float64
}

// ReadWithOptions parses GRIB2 messages from r applying the given options.
// Grid coordinates are computed once per distinct grid configuration and
// shared across every message that uses it.
func ReadWithOptions(r io.ReadSeeker, opts ...ReadOption) ([]*GRIB2, error) {
	config := defaultReadConfig()
	for _, opt := range opts {
		opt(&config)
	}

	var messages []*GRIB2Message
	var err error

	switch {
	case config.sequential && config.skipErrors:
		messages, err = ParseGRIB2MessagesFromStreamSequentialSkipErrors(r)
	case config.sequential:
		messages, err = ParseGRIB2MessagesFromStreamSequential(r)
	case config.ctx != nil:
		messages, err = ParseGRIB2MessagesFromStreamWithContext(config.ctx, r, config.workers)
	default:
		messages, err = ParseGRIB2MessagesFromStreamWithWorkers(r, config.workers)
	}
	if err != nil && !config.skipErrors {
		return nil, err
	}

	gridToMessages := make(map[gridKey][]*GRIB2Message)
	uniqueGrids := make(map[gridKey]*GRIB2Message)

	for _, msg := range messages {
		if msg == nil || !config.filter(msg) {
			continue
		}
		key, ok := createGridKey(msg)
		if !ok {
			continue
		}
		gridToMessages[key] = append(gridToMessages[key], msg)
		if _, exists := uniqueGrids[key]; !exists {
			uniqueGrids[key] = msg
		}
	}

	coordCache := make(map[gridKey]*coordinateCache)
	var cacheMutex sync.Mutex
	var wg sync.WaitGroup

	for key, exampleMsg := range uniqueGrids {
		wg.Add(1)
		go func(k gridKey, msg *GRIB2Message) {
			defer wg.Done()
			lats, lons, err := msg.Coordinates()
			if err != nil {
				return
			}
			cacheMutex.Lock()
			coordCache[k] = &coordinateCache{latitudes: lats, longitudes: lons}
			cacheMutex.Unlock()
		}(key, exampleMsg)
	}
	wg.Wait()

	type result struct {
		field *GRIB2
		err   error
		index int
	}

	totalMessages := 0
	for _, msgs := range gridToMessages {
		totalMessages += len(msgs)
	}

	resultChan := make(chan result, totalMessages)
	var decodeWg sync.WaitGroup
	maxWorkers := runtime.NumCPU() * 2
	semaphore := make(chan struct{}, maxWorkers)

	messageIndex := 0
	for key, msgs := range gridToMessages {
		cache, ok := coordCache[key]
		if !ok {
			messageIndex += len(msgs)
			continue
		}
		for _, msg := range msgs {
			decodeWg.Add(1)
			idx := messageIndex
			messageIndex++
			semaphore <- struct{}{}
			go func(m *GRIB2Message, lats, lons []float64, i int) {
				defer decodeWg.Done()
				defer func() { <-semaphore }()
				field, err := messageToGRIB2WithCoords(m, lats, lons)
				resultChan <- result{field: field, err: err, index: i}
			}(msg, cache.latitudes, cache.longitudes, idx)
		}
	}

	go func() {
		decodeWg.Wait()
		close(resultChan)
	}()

	results := make([]*result, totalMessages)
	for res := range resultChan {
		if res.err != nil {
			if !config.skipErrors {
				return nil, fmt.Errorf("failed to convert message: %w", res.err)
			}
			continue
		}
		r := res
		results[r.index] = &r
	}

	fields := make([]*GRIB2, 0, totalMessages)
	for _, res := range results {
		if res != nil && res.field != nil {
			fields = append(fields, res.field)
		}
	}

	return fields, nil
}

func messageToGRIB2WithCoords(msg *GRIB2Message, lats, lons []float64) (*GRIB2, error) {
	data, err := msg.DecodeData()
	if err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	g2 := &GRIB2{Data: data, Latitudes: lats, Longitudes: lons, NumPoints: len(data), message: msg}
	return populateMetadata(g2, msg), nil
}

func populateMetadata(g2 *GRIB2, msg *GRIB2Message) *GRIB2 {
	if msg.Section0 != nil {
		g2.Discipline = msg.Section0.DisciplineName()
	}
	if msg.Section1 != nil {
		g2.Center = msg.Section1.CenterName()
		g2.ReferenceTime = msg.Section1.ReferenceTime
		g2.ProductionStatus = msg.Section1.ProductionStatusName()
		g2.DataType = msg.Section1.DataTypeName()
	}
	if msg.Section3 != nil && msg.Section3.Grid != nil {
		g2.GridType = fmt.Sprintf("Template %d", msg.Section3.Grid.TemplateNumber())
		g2.GridNi = int(msg.Section3.NumDataPoints)
		g2.GridNj = 1
	}
	if msg.Section4 != nil && msg.Section4.Product != nil {
		discipline := msg.Section0.Discipline
		category := msg.Section4.Product.GetParameterCategory()
		number := msg.Section4.Product.GetParameterNumber()
		g2.Parameter = ParameterID{Discipline: discipline, Category: category, Number: number}

		if template, ok := msg.Section4.Product.(*product.Template40); ok {
			levelType := int(template.FirstSurfaceType)
			g2.Level = tables.GetLevelName(levelType)
			g2.LevelValue = template.FirstSurfaceValueScaled()
			if template.FirstSurfaceValue != 0 {
				g2.Level = fmt.Sprintf("%s %g", g2.Level, g2.LevelValue)
			}
		}
	}
	return g2
}

func (g *GRIB2) String() string {
	return fmt.Sprintf("GRIB2: %s from %s, %d points, ref time %s",
		g.Parameter, g.Center, g.NumPoints, g.ReferenceTime.Format(time.RFC3339))
}

// MinValue returns the minimum non-missing data value.
func (g *GRIB2) MinValue() float64 {
	if len(g.Data) == 0 {
		return 0
	}
	min := g.Data[0]
	for _, v := range g.Data {
		if v > 9e20 {
			continue
		}
		if v < min {
			min = v
		}
	}
	return min
}

// MaxValue returns the maximum non-missing data value.
func (g *GRIB2) MaxValue() float64 {
	if len(g.Data) == 0 {
		return 0
	}
	max := g.Data[0]
	for _, v := range g.Data {
		if v > 9e20 {
			continue
		}
		if v > max {
			max = v
		}
	}
	return max
}

// CountValid returns the number of non-missing values.
func (g *GRIB2) CountValid() int {
	count := 0
	for _, v := range g.Data {
		if v < 9e20 {
			count++
		}
	}
	return count
}

// GetMessage returns the underlying parsed message for advanced use.
func (g *GRIB2) GetMessage() *GRIB2Message {
	return g.message
}

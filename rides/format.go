// rides/format.go

package rides

import (
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrUnsupportedFormat is returned by Open for files no reader understands.
var ErrUnsupportedFormat = errors.New("unsupported ride file format")

const (
	attrStartTime  = "Start time"
	attrDeviceType = "Device type"
	attrNotes      = "Notes"

	startTimeLayout = "2006/01/02 15:04:05 MST"
)

// Writer serializes a ride to a file in native format.
type Writer interface {
	WriteRide(ride *Ride, path string) error
}

// Reader parses a ride file.
type Reader interface {
	ReadRide(r io.Reader) (*Ride, error)
}

type gcDocument struct {
	XMLName    xml.Name      `xml:"ride"`
	Attributes []gcAttribute `xml:"attributes>attribute"`
	Samples    []gcSample    `xml:"samples>sample"`
}

type gcAttribute struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

type gcSample struct {
	Secs  float64 `xml:"secs,attr"`
	Cad   float64 `xml:"cad,attr"`
	HR    float64 `xml:"hr,attr"`
	Km    float64 `xml:"km,attr"`
	Kph   float64 `xml:"kph,attr"`
	Watts float64 `xml:"watts,attr"`
	Alt   float64 `xml:"alt,attr"`
}

// NativeWriter writes rides as GoldenCheetah XML (.gc).
type NativeWriter struct{}

// WriteRide writes the ride to a temporary file next to path and renames it
// over path, so a failed write never truncates an existing file.
func (NativeWriter) WriteRide(ride *Ride, path string) error {
	doc := gcDocument{}
	if !ride.StartTime.IsZero() {
		doc.Attributes = append(doc.Attributes, gcAttribute{Key: attrStartTime, Value: ride.StartTime.UTC().Format(startTimeLayout)})
	}
	if ride.DeviceType != "" {
		doc.Attributes = append(doc.Attributes, gcAttribute{Key: attrDeviceType, Value: ride.DeviceType})
	}
	if ride.Notes != "" {
		doc.Attributes = append(doc.Attributes, gcAttribute{Key: attrNotes, Value: ride.Notes})
	}
	for _, s := range ride.Samples {
		doc.Samples = append(doc.Samples, gcSample{
			Secs: s.Secs, Cad: s.Cadence, HR: s.HR, Km: s.Km, Kph: s.Kph, Watts: s.Watts, Alt: s.Alt,
		})
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".ride-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.WriteString(tmp, "<!DOCTYPE GoldenCheetah>\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	enc := xml.NewEncoder(tmp)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode ride for %s: %w", path, err)
	}
	if _, err := io.WriteString(tmp, "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move ride into place at %s: %w", path, err)
	}
	return nil
}

// NativeReader parses GoldenCheetah XML (.gc).
type NativeReader struct{}

// ReadRide decodes a .gc document.
func (NativeReader) ReadRide(r io.Reader) (*Ride, error) {
	var doc gcDocument
	dec := xml.NewDecoder(r)
	dec.Strict = false
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode native ride: %w", err)
	}

	ride := &Ride{}
	for _, a := range doc.Attributes {
		switch a.Key {
		case attrStartTime:
			t, err := time.Parse(startTimeLayout, a.Value)
			if err != nil {
				return nil, fmt.Errorf("invalid start time %q: %w", a.Value, err)
			}
			ride.StartTime = t
		case attrDeviceType:
			ride.DeviceType = a.Value
		case attrNotes:
			ride.Notes = a.Value
		}
	}
	for _, s := range doc.Samples {
		ride.Samples = append(ride.Samples, Sample{
			Secs: s.Secs, Km: s.Km, Watts: s.Watts, Cadence: s.Cad, HR: s.HR, Kph: s.Kph, Alt: s.Alt,
		})
	}
	return ride, nil
}

// CSVReader imports comma separated exports with the header
// secs,km,watts,cad,hr,kph,alt. Columns may appear in any order; missing ones read as zero.
type CSVReader struct{}

// ReadRide parses the CSV export.
func (CSVReader) ReadRide(r io.Reader) (*Ride, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["secs"]; !ok {
		return nil, fmt.Errorf("csv header has no secs column")
	}

	ride := &Ride{DeviceType: "CSV"}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		field := func(name string) (float64, error) {
			i, ok := columns[name]
			if !ok || i >= len(row) || strings.TrimSpace(row[i]) == "" {
				return 0, nil
			}
			return strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		}
		var s Sample
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"secs", &s.Secs}, {"km", &s.Km}, {"watts", &s.Watts}, {"cad", &s.Cadence},
			{"hr", &s.HR}, {"kph", &s.Kph}, {"alt", &s.Alt},
		} {
			v, err := field(f.name)
			if err != nil {
				return nil, fmt.Errorf("csv line %d, column %s: %w", line, f.name, err)
			}
			*f.dst = v
		}
		ride.Samples = append(ride.Samples, s)
	}
	return ride, nil
}

// readerFor picks a reader by complete suffix.
func readerFor(fileName string) (Reader, error) {
	switch completeSuffix(fileName) {
	case "GC":
		return NativeReader{}, nil
	case "CSV":
		return CSVReader{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileName)
	}
}

// Open reads the ride file at path into a clean record with the given id.
func Open(id, path string) (*Record, error) {
	reader, err := readerFor(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ride %s: %w", path, err)
	}
	defer f.Close()

	ride, err := reader.ReadRide(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read ride %s: %w", path, err)
	}
	if ride.StartTime.IsZero() {
		if info, err := f.Stat(); err == nil {
			ride.StartTime = info.ModTime().UTC().Truncate(time.Second)
		}
	}
	return NewRecord(id, filepath.Dir(path), filepath.Base(path), ride), nil
}

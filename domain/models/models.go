package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"
)

type ValueType string

const (
	TypeString    ValueType = "string"
	TypeNumber    ValueType = "number"
	TypeTimestamp ValueType = "timestamp"
	TypeStatus    ValueType = "status"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// timestamp layouts accepted by ParseValue, most specific first
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	DateTimeLayout,
	DateLayout,
}

// Value is one typed field value. Raw keeps the text the value was built
// from; it is the string projection used by filtering and export.
type Value struct {
	Type  ValueType
	Raw   string
	Num   float64
	Time  time.Time
	valid bool
}

func String(s string) Value {
	return Value{Type: TypeString, Raw: s, valid: true}
}

func Status(s string) Value {
	return Value{Type: TypeStatus, Raw: s, valid: true}
}

// Number is invalid for NaN and infinities.
func Number(f float64) Value {
	raw := strconv.FormatFloat(f, 'f', -1, 64)
	if !finite(f) {
		return Value{Type: TypeNumber, Raw: raw}
	}
	return Value{Type: TypeNumber, Raw: raw, Num: f, valid: true}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Timestamp keeps date-only values in date form so that exports stay the
// same shape as the source data.
func Timestamp(t time.Time) Value {
	raw := t.Format(time.RFC3339)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		raw = t.Format(DateLayout)
	}
	return Value{Type: TypeTimestamp, Raw: raw, Time: t, valid: true}
}

// ParseValue builds a Value of type t from raw text. Text that does not
// parse under t yields an invalid Value that still carries the raw text.
func ParseValue(t ValueType, raw string) Value {
	trimmed := strings.TrimSpace(raw)
	switch t {
	case TypeNumber:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || !finite(f) {
			return Value{Type: t, Raw: raw}
		}
		return Value{Type: t, Raw: trimmed, Num: f, valid: true}
	case TypeTimestamp:
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, trimmed); err == nil {
				return Value{Type: t, Raw: trimmed, Time: ts, valid: true}
			}
		}
		return Value{Type: t, Raw: raw}
	case TypeStatus:
		return Status(raw)
	default:
		return String(raw)
	}
}

// Valid reports whether the value parsed under its declared type.
func (v Value) Valid() bool { return v.valid }

func (v Value) String() string { return v.Raw }

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Raw)
}

type RecordID string

type Record struct {
	ID     RecordID
	Fields map[string]Value
}

func NewRecord(id RecordID, fields map[string]Value) Record {
	return Record{ID: id, Fields: fields}
}

// Get returns the field value for key. Missing fields are reported as an
// invalid empty value so that callers never need a second lookup.
func (r Record) Get(key string) Value {
	if v, ok := r.Fields[key]; ok {
		return v
	}
	return Value{}
}

// Column is the declared schema of one field. Formatter is for display
// only and may be nil.
type Column struct {
	Key       string
	Label     string
	Type      ValueType
	Formatter func(Value) string `json:"-"`
}

// Format renders v for display using the column formatter when present.
func (c Column) Format(v Value) string {
	if c.Formatter != nil && v.Valid() {
		return c.Formatter(v)
	}
	return v.String()
}

// Dataset is one query result. It is replaced wholesale and never mutated
// in place; ID changes with every new Dataset.
type Dataset struct {
	ID      string
	Name    string
	Columns []Column
	Records []Record
}

func NewDataset(name string, columns []Column, records []Record) *Dataset {
	return &Dataset{
		ID:      uuid.NewV4().String(),
		Name:    name,
		Columns: columns,
		Records: records,
	}
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Column looks up a declared column by key.
func (d *Dataset) Column(key string) (Column, bool) {
	if d == nil {
		return Column{}, false
	}
	for _, c := range d.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

type Parameter string

const (
	Temperature Parameter = "temperature"
	Salinity    Parameter = "salinity"
	Pressure    Parameter = "pressure"
	Oxygen      Parameter = "oxygen"
)

type ParameterInfo struct {
	ID    Parameter
	Label string
	Unit  string
}

var parameters = []ParameterInfo{
	{ID: Temperature, Label: "Temperature", Unit: "°C"},
	{ID: Salinity, Label: "Salinity", Unit: "PSU"},
	{ID: Pressure, Label: "Pressure", Unit: "dbar"},
	{ID: Oxygen, Label: "Oxygen", Unit: "μmol/kg"},
}

func Parameters() []ParameterInfo {
	out := make([]ParameterInfo, len(parameters))
	copy(out, parameters)
	return out
}

var ErrUnknownParameter = errors.New("unknown parameter")

func ParseParameter(s string) (ParameterInfo, error) {
	for _, p := range parameters {
		if string(p.ID) == strings.ToLower(strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return ParameterInfo{}, fmt.Errorf("%w %q", ErrUnknownParameter, s)
}

func (p Parameter) Info() ParameterInfo {
	for _, info := range parameters {
		if info.ID == p {
			return info
		}
	}
	return ParameterInfo{ID: p, Label: string(p)}
}

// AxisTitle renders "Temperature (°C)".
func (p ParameterInfo) AxisTitle() string {
	if p.Unit == "" {
		return p.Label
	}
	return fmt.Sprintf("%s (%s)", p.Label, p.Unit)
}

package models

import "strconv"

// Field keys of the ARGO float measurement schema.
const (
	KeyFloatID      = "floatId"
	KeyOcean        = "ocean"
	KeyDate         = "date"
	KeyLatitude     = "latitude"
	KeyLongitude    = "longitude"
	KeyTemperature  = "temperature"
	KeySalinity     = "salinity"
	KeyPressure     = "pressure"
	KeyDepth        = "depth"
	KeyOxygen       = "oxygen"
	KeyChlorophyll  = "chlorophyll"
	KeyTurbidity    = "turbidity"
	KeyPH           = "ph"
	KeyBatteryLevel = "batteryLevel"
	KeyCycleNumber  = "cycleNumber"
	KeyStatus       = "status"
)

const (
	StatusActive      = "active"
	StatusMaintenance = "maintenance"
	StatusOffline     = "offline"
)

func fixed(decimals int) func(Value) string {
	return func(v Value) string {
		return strconv.FormatFloat(v.Num, 'f', decimals, 64)
	}
}

func percent(v Value) string {
	return strconv.FormatFloat(v.Num, 'f', 0, 64) + "%"
}

// ArgoColumns is the declared schema of the float measurement table.
func ArgoColumns() []Column {
	return []Column{
		{Key: KeyFloatID, Label: "Float ID", Type: TypeString},
		{Key: KeyOcean, Label: "Ocean", Type: TypeString},
		{Key: KeyDate, Label: "Date", Type: TypeTimestamp},
		{Key: KeyLatitude, Label: "Latitude", Type: TypeNumber, Formatter: fixed(4)},
		{Key: KeyLongitude, Label: "Longitude", Type: TypeNumber, Formatter: fixed(4)},
		{Key: KeyTemperature, Label: "Temperature (°C)", Type: TypeNumber, Formatter: fixed(2)},
		{Key: KeySalinity, Label: "Salinity (PSU)", Type: TypeNumber, Formatter: fixed(2)},
		{Key: KeyPressure, Label: "Pressure (dbar)", Type: TypeNumber, Formatter: fixed(1)},
		{Key: KeyDepth, Label: "Depth (m)", Type: TypeNumber, Formatter: fixed(1)},
		{Key: KeyOxygen, Label: "Oxygen (μmol/kg)", Type: TypeNumber, Formatter: fixed(1)},
		{Key: KeyChlorophyll, Label: "Chlorophyll (mg/m³)", Type: TypeNumber, Formatter: fixed(1)},
		{Key: KeyTurbidity, Label: "Turbidity (NTU)", Type: TypeNumber, Formatter: fixed(1)},
		{Key: KeyPH, Label: "pH", Type: TypeNumber, Formatter: fixed(2)},
		{Key: KeyBatteryLevel, Label: "Battery (%)", Type: TypeNumber, Formatter: percent},
		{Key: KeyCycleNumber, Label: "Cycle #", Type: TypeNumber},
		{Key: KeyStatus, Label: "Status", Type: TypeStatus},
	}
}

package source

import (
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/pivolan/argo_explorer/domain/models"
)

type floatSite struct {
	ID    string
	Ocean string
	Lat   float64
	Lon   float64
	Temp  float64
	Salt  float64
}

var floatSites = []floatSite{
	{"2901234", "North Pacific", 35.5, -150.0, 22.3, 34.8},
	{"2901235", "South Pacific", -25.0, -110.0, 18.7, 35.1},
	{"2901236", "North Atlantic", 40.0, -50.0, 15.2, 35.4},
	{"2901237", "South Atlantic", -30.0, -20.0, 19.8, 34.9},
	{"2901238", "Indian Ocean", -15.0, 70.0, 26.5, 35.2},
	{"2901239", "Indian Ocean", 5.0, 85.0, 28.9, 34.7},
	{"2901242", "Indian Ocean", -5.0, 95.0, 29.2, 34.6},
	{"2901243", "Indian Ocean", 10.0, 75.0, 27.8, 35.0},
	{"2901244", "Indian Ocean", -25.0, 45.0, 23.1, 35.3},
	{"2901245", "Indian Ocean", 0.0, 65.0, 29.5, 34.5},
	{"2901246", "Indian Ocean", -20.0, 105.0, 24.8, 35.1},
	{"2901240", "Arctic Ocean", 75.0, -150.0, -1.2, 32.1},
	{"2901241", "Southern Ocean", -60.0, 0.0, 2.1, 34.5},
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func jitter(rnd *rand.Rand, width float64) float64 {
	return (rnd.Float64() - 0.5) * width
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Synthetic generates demo surface measurements: five to ten records per
// float, two days apart, ending at until. The same seed and date always
// give the same dataset.
func Synthetic(seed int64, until time.Time) *models.Dataset {
	rnd := rand.New(rand.NewSource(seed))
	until = day(until)
	var records []models.Record
	for fi, site := range floatSites {
		n := 5 + rnd.Intn(6)
		for i := 0; i < n; i++ {
			date := until.AddDate(0, 0, -(i*2 + fi))
			pressure := 500 + rnd.Float64()*1500 + jitter(rnd, 50)
			status := models.StatusActive
			if rnd.Float64() <= 0.15 {
				status = models.StatusMaintenance
				if rnd.Float64() <= 0.5 {
					status = models.StatusOffline
				}
			}
			id := models.RecordID(strconv.Itoa(len(records) + 1))
			records = append(records, models.NewRecord(id, map[string]models.Value{
				models.KeyFloatID:      models.String(site.ID),
				models.KeyOcean:        models.String(site.Ocean),
				models.KeyDate:         models.Timestamp(date),
				models.KeyLatitude:     models.Number(round(site.Lat+jitter(rnd, 0.5), 4)),
				models.KeyLongitude:    models.Number(round(site.Lon+jitter(rnd, 0.5), 4)),
				models.KeyTemperature:  models.Number(round(site.Temp+jitter(rnd, 2), 2)),
				models.KeySalinity:     models.Number(round(site.Salt+jitter(rnd, 0.2), 2)),
				models.KeyPressure:     models.Number(round(pressure, 1)),
				models.KeyDepth:        models.Number(math.Round(pressure)),
				models.KeyOxygen:       models.Number(round(200+jitter(rnd, 30), 1)),
				models.KeyChlorophyll:  models.Number(round(0.1+rnd.Float64()*0.5, 3)),
				models.KeyTurbidity:    models.Number(round(0.05+rnd.Float64()*0.1, 3)),
				models.KeyPH:           models.Number(round(8+jitter(rnd, 0.4), 2)),
				models.KeyBatteryLevel: models.Number(float64(20 + rnd.Intn(80))),
				models.KeyCycleNumber:  models.Number(float64(1 + rnd.Intn(500))),
				models.KeyStatus:       models.Status(status),
			}))
		}
	}
	return models.NewDataset("ARGO float measurements", models.ArgoColumns(), records)
}

// ProfileDepthStep is the spacing of synthetic profile levels, 0 to 2000 m.
const ProfileDepthStep = 20

// SyntheticProfiles generates one full-depth profile per float taken on
// the given day.
func SyntheticProfiles(seed int64, on time.Time) *models.Dataset {
	rnd := rand.New(rand.NewSource(seed))
	on = day(on)
	var records []models.Record
	for _, site := range floatSites {
		surfaceO2 := 250 + rnd.Float64()*50
		for depth := 0.0; depth < 2000; depth += ProfileDepthStep {
			temp := site.Temp - depth*0.015 + math.Sin(depth*0.01)*0.5
			if site.Temp < 5 {
				temp = site.Temp + depth*0.001 + math.Sin(depth*0.01)*0.2
			}
			id := models.RecordID(site.ID + "-" + strconv.Itoa(int(depth)))
			records = append(records, models.NewRecord(id, map[string]models.Value{
				models.KeyFloatID:     models.String(site.ID),
				models.KeyOcean:       models.String(site.Ocean),
				models.KeyDate:        models.Timestamp(on),
				models.KeyLatitude:    models.Number(site.Lat),
				models.KeyLongitude:   models.Number(site.Lon),
				models.KeyDepth:       models.Number(depth),
				models.KeyTemperature: models.Number(round(temp, 2)),
				models.KeySalinity:    models.Number(round(site.Salt+depth*0.0008+math.Sin(depth*0.005)*0.1, 2)),
				models.KeyPressure:    models.Number(round(depth+rnd.Float64()*0.1, 2)),
				models.KeyOxygen:      models.Number(round(surfaceO2*math.Exp(-depth/1000)+math.Sin(depth*0.02)*10, 2)),
				models.KeyStatus:      models.Status(models.StatusActive),
			}))
		}
	}
	return models.NewDataset("ARGO float profiles", models.ArgoColumns(), records)
}

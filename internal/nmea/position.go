package nmea

import (
	"fmt"
	"strings"
	"time"
)

// GLL is a geographic position fix.
type GLL struct{ *Sentence }

// Latitude is the raw ddmm.mmmm field as a number.
func (g *GLL) Latitude() (float64, error) { return g.float("lat") }

// Longitude is the raw dddmm.mmmm field as a number.
func (g *GLL) Longitude() (float64, error) { return g.float("lon") }

func (g *GLL) LatDirection() (string, error) { return g.direction("lat_dir") }
func (g *GLL) LonDirection() (string, error) { return g.direction("lon_dir") }

// Position returns signed decimal degrees.
func (g *GLL) Position() (lat, lon float64, err error) {
	return g.position("lat", "lat_dir", "lon", "lon_dir")
}

// Valid reports the data validity flag. Older receivers omit it.
func (g *GLL) Valid() bool { return g.flag("data_valid", "A") }

// RMC is the recommended minimum fix.
type RMC struct{ *Sentence }

func (r *RMC) Latitude() (float64, error) { return r.float("lat") }
func (r *RMC) Longitude() (float64, error) { return r.float("lon") }
func (r *RMC) LatDirection() (string, error) { return r.direction("lat_dir") }
func (r *RMC) LonDirection() (string, error) { return r.direction("lon_dir") }
func (r *RMC) SpeedKnots() (float64, error) { return r.float("spd_over_grnd") }
func (r *RMC) TrueCourse() (float64, error) { return r.float("true_course") }
func (r *RMC) Valid() bool { return r.flag("data_validity", "A") }

func (r *RMC) Position() (lat, lon float64, err error) {
	return r.position("lat", "lat_dir", "lon", "lon_dir")
}

// Time combines the datestamp (ddmmyy) and timestamp into a UTC time.
func (r *RMC) Time() (time.Time, error) {
	date, err := r.str("datestamp")
	if err != nil {
		return time.Time{}, err
	}
	if len(date) != 6 {
		return time.Time{}, fmt.Errorf("nmea: %s.datestamp %q: bad date", r.typ, date)
	}
	t, err := time.Parse("020106", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("nmea: %s.datestamp %q: %w", r.typ, date, err)
	}
	clock, err := r.clock("timestamp")
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Add(clock), nil
}

// GGA is GPS fix data.
type GGA struct{ *Sentence }

func (g *GGA) Latitude() (float64, error) { return g.float("lat") }
func (g *GGA) Longitude() (float64, error) { return g.float("lon") }
func (g *GGA) LatDirection() (string, error) { return g.direction("lat_dir") }
func (g *GGA) LonDirection() (string, error) { return g.direction("lon_dir") }

func (g *GGA) Position() (lat, lon float64, err error) {
	return g.position("lat", "lat_dir", "lon", "lon_dir")
}

// FixQuality is the GPS quality indicator; 0 means no fix.
func (g *GGA) FixQuality() (int, error) { return g.int("gps_qual") }
func (g *GGA) NumSatellites() (int, error) { return g.int("num_sats") }
func (g *GGA) HDOP() (float64, error) { return g.float("horizontal_dil") }

// Altitude is antenna altitude above mean sea level, in altitude_units
// (always meters in practice).
func (g *GGA) Altitude() (float64, error) { return g.float("altitude") }

// GSA lists the satellites used in the fix and the DOP values.
type GSA struct{ *Sentence }

// FixType is 1 (no fix), 2 (2D) or 3 (3D).
func (g *GSA) FixType() (int, error) { return g.int("mode_fix_type") }
func (g *GSA) PDOP() (float64, error) { return g.float("pdop") }
func (g *GSA) HDOP() (float64, error) { return g.float("hdop") }
func (g *GSA) VDOP() (float64, error) { return g.float("vdop") }

// SatellitesUsed returns the non-empty satellite ID slots.
func (g *GSA) SatellitesUsed() []string {
	out := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		if v, err := g.str(fmt.Sprintf("sv_id%02d", i)); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// GSV carries up to four satellite blocks per sentence.
type GSV struct{ *Sentence }

// SatelliteInView is one GSV block, fields as sent. SNR is empty when the
// satellite is not tracked.
type SatelliteInView struct {
	PRN       string `json:"prn"`
	Elevation string `json:"elevation"`
	Azimuth   string `json:"azimuth"`
	SNR       string `json:"snr"`
}

// Tracked reports whether the receiver has a signal from the satellite.
func (sv SatelliteInView) Tracked() bool { return strings.TrimSpace(sv.SNR) != "" }

func (g *GSV) NumMessages() (int, error) { return g.int("num_messages") }
func (g *GSV) MessageNumber() (int, error) { return g.int("msg_num") }
func (g *GSV) NumInView() (int, error) { return g.int("num_sv_in_view") }

// Satellites groups the trailing data into blocks of four. A trailing
// partial block (the NMEA 4.1 signal ID) is ignored.
func (g *GSV) Satellites() []SatelliteInView {
	data := g.list
	out := make([]SatelliteInView, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		out = append(out, SatelliteInView{
			PRN:       data[i],
			Elevation: data[i+1],
			Azimuth:   data[i+2],
			SNR:       data[i+3],
		})
	}
	return out
}

// VTG is track made good and ground speed.
type VTG struct{ *Sentence }

func (v *VTG) TrueTrack() (float64, error) { return v.float("true_track") }
func (v *VTG) MagneticTrack() (float64, error) { return v.float("mag_track") }
func (v *VTG) SpeedKnots() (float64, error) { return v.float("spd_over_grnd_kts") }
func (v *VTG) SpeedKmh() (float64, error) { return v.float("spd_over_grnd_kmph") }

// ZDA is UTC time and date.
type ZDA struct{ *Sentence }

// Time returns the UTC date and time.
func (z *ZDA) Time() (time.Time, error) {
	day, err := z.int("day")
	if err != nil {
		return time.Time{}, err
	}
	month, err := z.int("month")
	if err != nil {
		return time.Time{}, err
	}
	year, err := z.int("year")
	if err != nil {
		return time.Time{}, err
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("nmea: %s.month %d out of range", z.typ, month)
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("nmea: %s.day %d out of range", z.typ, day)
	}
	if year < 100 {
		year = fullYear(year)
	}
	clock, err := z.clock("timestamp")
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Add(clock), nil
}

// LocalZone returns the local zone offset from UTC.
func (z *ZDA) LocalZone() (time.Duration, error) {
	h, err := z.int("local_zone")
	if err != nil {
		return 0, err
	}
	m, err := z.int("local_zone_minutes")
	if err != nil {
		m = 0
	}
	// The sign lives on the hour, and "-00" is still west of UTC.
	if raw, _ := z.Field("local_zone"); strings.HasPrefix(strings.TrimSpace(raw), "-") {
		m = -m
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

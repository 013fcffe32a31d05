package nmea

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var directionNames = map[string]string{
	"N": "North",
	"S": "South",
	"E": "East",
	"W": "West",
}

// DirectionName maps a compass letter to its name. The match is
// case-insensitive; anything but N/S/E/W returns ErrUnknownDirection.
func DirectionName(letter string) (string, error) {
	name, ok := directionNames[strings.ToUpper(strings.TrimSpace(letter))]
	if !ok {
		return "", fmt.Errorf("nmea: direction %q: %w", letter, ErrUnknownDirection)
	}
	return name, nil
}

// ParseLatLon converts ddmm.mmmm (latitude) or dddmm.mmmm (longitude) plus a
// hemisphere letter to signed decimal degrees.
func ParseLatLon(v string, hemi string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, ErrFieldUnset
	}
	if _, err := DirectionName(hemi); err != nil {
		return 0, err
	}
	hemi = strings.ToUpper(strings.TrimSpace(hemi))

	// The last two digits of the integer part are whole minutes.
	dot := strings.IndexByte(v, '.')
	intPart := v
	if dot != -1 {
		intPart = v[:dot]
	}
	if len(intPart) < 3 {
		return 0, fmt.Errorf("nmea: lat/lon %q: too short", v)
	}
	deg, err := strconv.Atoi(intPart[:len(intPart)-2])
	if err != nil {
		return 0, fmt.Errorf("nmea: lat/lon %q: %w", v, err)
	}
	mins, err := strconv.ParseFloat(v[len(intPart)-2:], 64)
	if err != nil {
		return 0, fmt.Errorf("nmea: lat/lon %q: %w", v, err)
	}

	dec := float64(deg) + (mins / 60.0)
	if hemi == "S" || hemi == "W" {
		dec = -dec
	}
	return dec, nil
}

func (s *Sentence) str(key string) (string, error) {
	v, ok := s.values[key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("nmea: %s.%s: %w", s.typ, key, ErrFieldUnset)
	}
	return strings.TrimSpace(v), nil
}

func (s *Sentence) float(key string) (float64, error) {
	v, err := s.str(key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("nmea: %s.%s: %w", s.typ, key, err)
	}
	return f, nil
}

func (s *Sentence) int(key string) (int, error) {
	v, err := s.str(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("nmea: %s.%s: %w", s.typ, key, err)
	}
	return n, nil
}

func (s *Sentence) direction(key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("nmea: %s.%s: %w", s.typ, key, ErrFieldUnset)
	}
	return DirectionName(v)
}

func (s *Sentence) coord(key, dirKey string) (float64, error) {
	v, err := s.str(key)
	if err != nil {
		return 0, err
	}
	dir, ok := s.values[dirKey]
	if !ok {
		return 0, fmt.Errorf("nmea: %s.%s: %w", s.typ, dirKey, ErrFieldUnset)
	}
	return ParseLatLon(v, dir)
}

func (s *Sentence) position(latKey, latDirKey, lonKey, lonDirKey string) (lat, lon float64, err error) {
	if lat, err = s.coord(latKey, latDirKey); err != nil {
		return 0, 0, err
	}
	if lon, err = s.coord(lonKey, lonDirKey); err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func (s *Sentence) flag(key, want string) bool {
	v, ok := s.values[key]
	return ok && strings.EqualFold(strings.TrimSpace(v), want)
}

// clock parses hhmmss[.sss] into an offset from midnight.
func (s *Sentence) clock(key string) (time.Duration, error) {
	v, err := s.str(key)
	if err != nil {
		return 0, err
	}
	if len(v) < 6 {
		return 0, fmt.Errorf("nmea: %s.%s %q: short time", s.typ, key, v)
	}
	h, err1 := strconv.Atoi(v[0:2])
	m, err2 := strconv.Atoi(v[2:4])
	sec, err3 := strconv.ParseFloat(v[4:], 64)
	if err1 != nil || err2 != nil || err3 != nil || h > 23 || m > 59 || sec >= 61 {
		return 0, fmt.Errorf("nmea: %s.%s %q: bad time", s.typ, key, v)
	}
	d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
	d += time.Duration(sec * float64(time.Second))
	return d.Round(time.Millisecond), nil
}

// fullYear expands a two-digit NMEA year. 80..99 are 19xx.
func fullYear(yy int) int {
	if yy < 80 {
		return 2000 + yy
	}
	return 1900 + yy
}

package nmea

import (
	"fmt"
	"strings"
)

// BOD is bearing from origin to destination waypoint.
type BOD struct{ *Sentence }

// BearingTrue joins the bearing and its type, e.g. "045.,T".
func (b *BOD) BearingTrue() string {
	return b.values["bearing_t"] + "," + b.values["bearing_t_type"]
}

// BearingMagnetic joins the bearing and its type, e.g. "023.,M".
func (b *BOD) BearingMagnetic() string {
	return b.values["bearing_mag"] + "," + b.values["bearing_mag_type"]
}

func (b *BOD) Destination() string { return b.values["dest"] }
func (b *BOD) Origin() string { return b.values["start"] }

// waypointBearing holds the accessors BWC and BWR share.
type waypointBearing struct{ *Sentence }

func (w waypointBearing) NextPosition() (lat, lon float64, err error) {
	return w.position("lat_next", "lat_next_direction", "lon_next", "lon_next_direction")
}

func (w waypointBearing) TrueTrack() (float64, error) { return w.float("true_track") }
func (w waypointBearing) MagneticTrack() (float64, error) { return w.float("mag_track") }
func (w waypointBearing) Range() (float64, error) { return w.float("range_next") }
func (w waypointBearing) WaypointName() string { return w.values["waypoint_name"] }

// BWC is bearing and distance to a waypoint along a great circle.
type BWC struct{ waypointBearing }

// BWR is bearing and distance to a waypoint along a rhumb line.
type BWR struct{ waypointBearing }

// BWW is bearing from one waypoint to another.
type BWW struct{ *Sentence }

func (b *BWW) BearingTrue() (float64, error) { return b.float("bearing_deg_true") }
func (b *BWW) Destination() string { return b.values["waypoint_dest"] }
func (b *BWW) Origin() string { return b.values["waypoint_orig"] }

// RMB is recommended minimum navigation information.
type RMB struct{ *Sentence }

func (r *RMB) Valid() bool { return r.flag("validity", "A") }
func (r *RMB) CrossTrackError() (float64, error) { return r.float("cross_track_error") }
func (r *RMB) Range() (float64, error) { return r.float("dest_range") }
func (r *RMB) Arrived() bool { return r.flag("arrival_alarm", "A") }

// SteerDirection names the direction to steer to correct cross track error.
func (r *RMB) SteerDirection() (string, error) { return steerName(r.Sentence, "cte_correction_dir") }

func (r *RMB) DestinationPosition() (lat, lon float64, err error) {
	return r.position("dest_lat", "dest_lat_dir", "dest_lon", "dest_lon_dir")
}

// RTE is one sentence of a route; long routes span several.
type RTE struct{ *Sentence }

// Waypoints returns the waypoint IDs carried by this sentence.
func (r *RTE) Waypoints() []string { return r.List() }

// Complete reports whether the route is the complete list ('c') rather
// than the working list ('w').
func (r *RTE) Complete() bool { return r.flag("start_type", "c") }

// R00 is the non-standard active route waypoint list.
type R00 struct{ *Sentence }

func (r *R00) Waypoints() []string { return r.List() }

// WPL is a waypoint location.
type WPL struct{ *Sentence }

func (w *WPL) Position() (lat, lon float64, err error) {
	return w.position("lat", "lat_dir", "lon", "lon_dir")
}
func (w *WPL) ID() string { return w.values["waypoint_id"] }

// XTE is measured cross-track error.
type XTE struct{ *Sentence }

func (x *XTE) Distance() (float64, error) { return x.float("cross_track_err_dist") }
func (x *XTE) SteerDirection() (string, error) { return steerName(x.Sentence, "correction_dir") }

// APB is the autopilot B sentence.
type APB struct{ *Sentence }

func (a *APB) CrossTrackError() (float64, error) { return a.float("cross_track_err_mag") }
func (a *APB) SteerDirection() (string, error) { return steerName(a.Sentence, "dir_steer") }
func (a *APB) HeadingToSteer() (float64, error) { return a.float("heading_to_dest") }
func (a *APB) ArrivalCircle() bool { return a.flag("status_arrival_circle", "A") }

func steerName(s *Sentence, key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("nmea: %s.%s: %w", s.typ, key, ErrFieldUnset)
	}
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "L":
		return "Left", nil
	case "R":
		return "Right", nil
	}
	return "", fmt.Errorf("nmea: steer %q: %w", v, ErrUnknownDirection)
}

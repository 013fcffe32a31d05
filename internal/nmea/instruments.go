package nmea

// HDG is magnetic heading with deviation and variation.
type HDG struct{ *Sentence }

func (h *HDG) Heading() (float64, error) { return h.float("heading") }
func (h *HDG) Deviation() (float64, error) { return signed(h.Sentence, "deviation", "dev_dir") }
func (h *HDG) Variation() (float64, error) { return signed(h.Sentence, "variation", "var_dir") }

// HDT is true heading.
type HDT struct{ *Sentence }

func (h *HDT) Heading() (float64, error) { return h.float("heading") }

// MWV is wind speed and angle.
type MWV struct{ *Sentence }

func (m *MWV) WindAngle() (float64, error) { return m.float("wind_angle") }
func (m *MWV) WindSpeed() (float64, error) { return m.float("wind_speed") }

// Relative reports whether the angle is relative to the bow ('R') rather
// than true ('T').
func (m *MWV) Relative() bool { return m.flag("reference", "R") }
func (m *MWV) Valid() bool { return m.flag("status", "A") }

// DBT is depth below transducer.
type DBT struct{ *Sentence }

func (d *DBT) DepthMeters() (float64, error) { return d.float("depth_meters") }
func (d *DBT) DepthFeet() (float64, error) { return d.float("depth_feet") }

// DPT is depth of water with transducer offset.
type DPT struct{ *Sentence }

func (d *DPT) Depth() (float64, error) { return d.float("depth") }
func (d *DPT) Offset() (float64, error) { return d.float("offset") }

// PGRME is Garmin's estimated position error, in meters.
type PGRME struct{ *Sentence }

func (p *PGRME) HorizontalError() (float64, error) { return p.float("hpe") }
func (p *PGRME) VerticalError() (float64, error) { return p.float("vpe") }
func (p *PGRME) SphericalError() (float64, error) { return p.float("osepe") }

// PGRMZ is Garmin altitude, in feet.
type PGRMZ struct{ *Sentence }

func (p *PGRMZ) Altitude() (float64, error) { return p.float("altitude") }

// PGRMM is the Garmin active map datum.
type PGRMM struct{ *Sentence }

func (p *PGRMM) Datum() string { return p.values["datum"] }

// signed applies an E/W letter to a magnitude; W is negative.
func signed(s *Sentence, key, dirKey string) (float64, error) {
	v, err := s.float(key)
	if err != nil {
		return 0, err
	}
	dir, err := s.direction(dirKey)
	if err != nil {
		return 0, err
	}
	if dir == "West" || dir == "South" {
		v = -v
	}
	return v, nil
}

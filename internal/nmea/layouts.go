package nmea

// fm builds a FieldMap from label/key pairs.
func fm(pairs ...string) FieldMap {
	if len(pairs)%2 != 0 {
		panic("nmea: odd label/key pairs")
	}
	out := make(FieldMap, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Field{Label: pairs[i], Key: pairs[i+1]})
	}
	return out
}

// genericLayout is used for types with no registered layout. Every data
// field lands in the list, so no sentence is too long for it.
var genericLayout = &Layout{
	Description: "Unknown sentence",
	List:        &Field{Label: "Data", Key: "data"},
}

// builtinLayouts is the default registry content. Standard sentences are
// registered under their GP code and resolve for any talker.
func builtinLayouts() []*Layout {
	return []*Layout{
		// Position and fix.
		{Code: "GPGLL", Description: "Geographic Position, Latitude/Longitude", Fields: fm(
			"Latitude", "lat",
			"Latitude Direction", "lat_dir",
			"Longitude", "lon",
			"Longitude Direction", "lon_dir",
			"Timestamp", "timestamp",
			"Data Validity", "data_valid",
			"FAA Mode", "faa_mode",
		), wrap: func(s *Sentence) Record { return &GLL{s} }},
		{Code: "GPRMC", Description: "Recommended Minimum Specific GNSS Data", Fields: fm(
			"Timestamp", "timestamp",
			"Data Validity", "data_validity",
			"Latitude", "lat",
			"Latitude Direction", "lat_dir",
			"Longitude", "lon",
			"Longitude Direction", "lon_dir",
			"Speed Over Ground", "spd_over_grnd",
			"True Course", "true_course",
			"Datestamp", "datestamp",
			"Magnetic Variation", "mag_variation",
			"Magnetic Variation Direction", "mag_var_dir",
			"FAA Mode", "faa_mode",
			"Navigational Status", "nav_status",
		), wrap: func(s *Sentence) Record { return &RMC{s} }},
		{Code: "GPGGA", Description: "Global Positioning System Fix Data", Fields: fm(
			"Timestamp", "timestamp",
			"Latitude", "lat",
			"Latitude Direction", "lat_dir",
			"Longitude", "lon",
			"Longitude Direction", "lon_dir",
			"GPS Quality Indicator", "gps_qual",
			"Number of Satellites in use", "num_sats",
			"Horizontal Dilution of Precision", "horizontal_dil",
			"Antenna Alt above sea level (mean)", "altitude",
			"Units of altitude (meters)", "altitude_units",
			"Geoidal Separation", "geo_sep",
			"Units of Geoidal Separation (meters)", "geo_sep_units",
			"Age of Differential GPS Data (secs)", "age_gps_data",
			"Differential Reference Station ID", "ref_station_id",
		), wrap: func(s *Sentence) Record { return &GGA{s} }},
		{Code: "GPGSA", Description: "GPS DOP and Active Satellites", Fields: fm(
			"Mode", "mode",
			"Mode fix type", "mode_fix_type",
			"SV ID01", "sv_id01",
			"SV ID02", "sv_id02",
			"SV ID03", "sv_id03",
			"SV ID04", "sv_id04",
			"SV ID05", "sv_id05",
			"SV ID06", "sv_id06",
			"SV ID07", "sv_id07",
			"SV ID08", "sv_id08",
			"SV ID09", "sv_id09",
			"SV ID10", "sv_id10",
			"SV ID11", "sv_id11",
			"SV ID12", "sv_id12",
			"PDOP (Dilution of precision)", "pdop",
			"HDOP (Horizontal DOP)", "hdop",
			"VDOP (Vertical DOP)", "vdop",
			"System ID", "system_id",
		), wrap: func(s *Sentence) Record { return &GSA{s} }},
		{Code: "GPGSV", Description: "GPS Satellites in View", Fields: fm(
			"Number of messages of type in cycle", "num_messages",
			"Message Number", "msg_num",
			"Total number of SVs in view", "num_sv_in_view",
		), List: &Field{Label: "Satellite Data", Key: "sv_data"},
			wrap: func(s *Sentence) Record { return &GSV{s} }},
		{Code: "GPVTG", Description: "Track Made Good and Ground Speed", Fields: fm(
			"True Track made good", "true_track",
			"True Track made good symbol", "true_track_sym",
			"Magnetic Track made good", "mag_track",
			"Magnetic Track symbol", "mag_track_sym",
			"Speed over ground knots", "spd_over_grnd_kts",
			"Speed over ground symbol", "spd_over_grnd_kts_sym",
			"Speed over ground kmph", "spd_over_grnd_kmph",
			"Speed over ground kmph symbol", "spd_over_grnd_kmph_sym",
			"FAA Mode", "faa_mode",
		), wrap: func(s *Sentence) Record { return &VTG{s} }},
		{Code: "GPZDA", Description: "Time & Date", Fields: fm(
			"Timestamp", "timestamp",
			"Day", "day",
			"Month", "month",
			"Year", "year",
			"Local Zone Description", "local_zone",
			"Local Zone Minutes Description", "local_zone_minutes",
		), wrap: func(s *Sentence) Record { return &ZDA{s} }},

		// Waypoints and routes.
		{Code: "GPBOD", Description: "Bearing, Origin to Destination", Fields: fm(
			"Bearing True", "bearing_t",
			"Bearing True Type", "bearing_t_type",
			"Bearing Magnetic", "bearing_mag",
			"Bearing Magnetic Type", "bearing_mag_type",
			"Destination", "dest",
			"Start", "start",
		), wrap: func(s *Sentence) Record { return &BOD{s} }},
		{Code: "GPBWC", Description: "Bearing & Distance to Waypoint, Great Circle",
			Fields: bearingToWaypointFields, wrap: func(s *Sentence) Record { return &BWC{waypointBearing{s}} }},
		{Code: "GPBWR", Description: "Bearing & Distance to Waypoint, Rhumb Line",
			Fields: bearingToWaypointFields, wrap: func(s *Sentence) Record { return &BWR{waypointBearing{s}} }},
		{Code: "GPBWW", Description: "Bearing, Waypoint to Waypoint", Fields: fm(
			"Bearing degrees True", "bearing_deg_true",
			"Bearing degrees True Symbol", "bearing_deg_true_sym",
			"Bearing degrees Magnetic", "bearing_deg_mag",
			"Bearing degrees Magnetic Symbol", "bearing_deg_mag_sym",
			"Destination Waypoint ID", "waypoint_dest",
			"Origin Waypoint ID", "waypoint_orig",
		), wrap: func(s *Sentence) Record { return &BWW{s} }},
		{Code: "GPRMB", Description: "Recommended Minimum Navigation Information", Fields: fm(
			"Data Validity", "validity",
			"Cross Track Error", "cross_track_error",
			"Cross Track Error, direction to correct", "cte_correction_dir",
			"Origin Waypoint ID", "origin_waypoint_id",
			"Destination Waypoint ID", "dest_waypoint_id",
			"Destination Waypoint Latitude", "dest_lat",
			"Destination Waypoint Lat Direction", "dest_lat_dir",
			"Destination Waypoint Longitude", "dest_lon",
			"Destination Waypoint Lon Direction", "dest_lon_dir",
			"Range to Destination", "dest_range",
			"True Bearing to Destination", "dest_true_bearing",
			"Velocity Towards Destination", "dest_velocity",
			"Arrival Alarm", "arrival_alarm",
			"FAA Mode", "faa_mode",
		), wrap: func(s *Sentence) Record { return &RMB{s} }},
		{Code: "GPRTE", Description: "Routes", Fields: fm(
			"Number of sentences in sequence", "num_in_seq",
			"Sentence Number", "sen_num",
			"Start Type", "start_type",
			"Name or Number of Active Route", "active_route_id",
		), List: &Field{Label: "Waypoint List", Key: "waypoint_list"},
			wrap: func(s *Sentence) Record { return &RTE{s} }},
		{Code: "GPR00", Description: "Waypoint List, Active Route",
			List: &Field{Label: "Waypoint List", Key: "waypoint_list"},
			wrap: func(s *Sentence) Record { return &R00{s} }},
		{Code: "GPWPL", Description: "Waypoint Location", Fields: fm(
			"Latitude", "lat",
			"Latitude Direction", "lat_dir",
			"Longitude", "lon",
			"Longitude Direction", "lon_dir",
			"Waypoint ID", "waypoint_id",
		), wrap: func(s *Sentence) Record { return &WPL{s} }},
		{Code: "GPXTE", Description: "Cross-Track Error, Measured", Fields: fm(
			"General Warning Flag", "warning_flag",
			"Lock flag (Not Used)", "lock_flag",
			"Cross Track Error Distance", "cross_track_err_dist",
			"Correction Direction (L or R)", "correction_dir",
			"Distance Units", "dist_units",
			"FAA Mode", "faa_mode",
		), wrap: func(s *Sentence) Record { return &XTE{s} }},
		{Code: "GPAPB", Description: "Autopilot Sentence B", Fields: fm(
			"General Status", "status_general",
			"Cycle lock Status", "status_cycle_lock",
			"Cross Track Error Magnitude", "cross_track_err_mag",
			"Direction to Steer (L or R)", "dir_steer",
			"Cross Track Units (Nautical Miles or KM)", "cross_track_unit",
			"Arrival Circle Status", "status_arrival_circle",
			"Perpendicular Passing Status", "status_perpendicular_passing",
			"Bearing to Destination (Origin to Dest)", "bearing_origin_dest",
			"Bearing Type", "bearing_origin_dest_type",
			"Destination Waypoint ID", "dest_waypoint_id",
			"Bearing, present position to dest", "bearing_pres_dest",
			"Bearing to Destination, Type", "bearing_pres_dest_type",
			"Heading to Steer to Destination", "heading_to_dest",
			"Heading to Steer to Destination Type", "heading_to_dest_type",
			"FAA Mode", "faa_mode",
		), wrap: func(s *Sentence) Record { return &APB{s} }},

		// Heading, wind and depth.
		{Code: "GPHDG", Description: "Heading, Deviation & Variation", Fields: fm(
			"Heading", "heading",
			"Deviation", "deviation",
			"Deviation Direction", "dev_dir",
			"Variation", "variation",
			"Variation Direction", "var_dir",
		), wrap: func(s *Sentence) Record { return &HDG{s} }},
		{Code: "GPHDT", Description: "Heading, True", Fields: fm(
			"Heading", "heading",
			"True", "hdg_true",
		), wrap: func(s *Sentence) Record { return &HDT{s} }},
		{Code: "GPMWV", Description: "Wind Speed and Angle", Fields: fm(
			"Wind angle", "wind_angle",
			"Reference", "reference",
			"Wind speed", "wind_speed",
			"Wind speed units", "wind_speed_units",
			"Status", "status",
		), wrap: func(s *Sentence) Record { return &MWV{s} }},
		{Code: "GPDBT", Description: "Depth Below Transducer", Fields: fm(
			"Water depth, feet", "depth_feet",
			"Feet", "unit_feet",
			"Water depth, Meters", "depth_meters",
			"Meters", "unit_meters",
			"Water depth, Fathoms", "depth_fathoms",
			"Fathoms", "unit_fathoms",
		), wrap: func(s *Sentence) Record { return &DBT{s} }},
		{Code: "GPDPT", Description: "Depth of Water", Fields: fm(
			"Water depth, in meters", "depth",
			"Offset from the transducer, in meters", "offset",
			"Maximum range scale in use", "range",
		), wrap: func(s *Sentence) Record { return &DPT{s} }},

		// Garmin proprietary.
		{Code: "PGRME", Description: "Garmin Estimated Error", Fields: fm(
			"Estimated Horizontal Position Error", "hpe",
			"Estimated Horizontal Position Error Unit (M)", "hpe_unit",
			"Estimated Vertical Position Error", "vpe",
			"Estimated Vertical Position Error Unit (M)", "vpe_unit",
			"Estimated Position Error", "osepe",
			"Overall Spherical Equiv. Position Error", "osepe_unit",
		), wrap: func(s *Sentence) Record { return &PGRME{s} }},
		{Code: "PGRMZ", Description: "Garmin Altitude", Fields: fm(
			"Altitude", "altitude",
			"Altitude Units (Feet)", "altitude_unit",
			"Positional Fix Dimension (2=user, 3=GPS)", "pos_fix_dim",
		), wrap: func(s *Sentence) Record { return &PGRMZ{s} }},
		{Code: "PGRMM", Description: "Garmin Map Datum", Fields: fm(
			"Currently Active Datum", "datum",
		), wrap: func(s *Sentence) Record { return &PGRMM{s} }},
	}
}

var bearingToWaypointFields = fm(
	"Timestamp", "timestamp",
	"Latitude of next Waypoint", "lat_next",
	"Latitude of next Waypoint Direction", "lat_next_direction",
	"Longitude of next Waypoint", "lon_next",
	"Longitude of next Waypoint Direction", "lon_next_direction",
	"True track to waypoint", "true_track",
	"True Track Symbol", "true_track_sym",
	"Magnetic track to waypoint", "mag_track",
	"Magnetic Symbol", "mag_sym",
	"Range to waypoint", "range_next",
	"Unit of range", "range_unit",
	"Waypoint Name", "waypoint_name",
	"FAA Mode", "faa_mode",
)

package nmea

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLayout = &Layout{Code: "GPGLL", Fields: fm(
	"Latitude", "lat",
	"Direction", "lat_dir",
	"Longitude", "lon",
	"Direction", "lon_dir",
)}

func TestLayoutParse_BindsFields(t *testing.T) {
	rec, err := testLayout.Parse("$GPGLL,3751.65,S,14507.36,E*77")
	require.NoError(t, err)

	assert.Equal(t, "GPGLL", rec.SentenceType())
	assert.Equal(t, []string{"GPGLL", "3751.65", "S", "14507.36", "E"}, rec.Parts())
	assert.Equal(t, "$GPGLL,3751.65,S,14507.36,E*77", rec.RawText())
	for key, want := range map[string]string{"lat": "3751.65", "lat_dir": "S", "lon": "14507.36", "lon_dir": "E"} {
		got, ok := rec.Field(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	ck, ok := rec.Checksum()
	require.True(t, ok)
	assert.Equal(t, "77", ck)
}

func TestLayoutParse_NoMarker(t *testing.T) {
	rec, err := testLayout.Parse("GPGLL,3751.65,S,14507.36,E")
	require.NoError(t, err)
	assert.Equal(t, "GPGLL", rec.SentenceType())
	assert.False(t, rec.HasChecksum())
}

func TestLayoutParse_ShortSentenceLeavesFieldsUnset(t *testing.T) {
	rec, err := testLayout.Parse("$GPGLL,3751.65,S")
	require.NoError(t, err)

	_, ok := rec.Field("lat_dir")
	assert.True(t, ok)
	_, ok = rec.Field("lon")
	assert.False(t, ok)
	_, ok = rec.Field("lon_dir")
	assert.False(t, ok)
	assert.Len(t, rec.Fields(), 2)
}

func TestLayoutParse_TooManyFields(t *testing.T) {
	_, err := testLayout.Parse("$GPGLL,3751.65,S,14507.36,E,extra*77")
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestLayoutParse_InvalidChecksumStaysInField(t *testing.T) {
	for _, raw := range []string{"$GPGLL,3751.65,S,14507.36,E*hh", "$GPGLL,3751.65,S,14507.36,E*kk", "$GPGLL,3751.65,S,14507.36,E*7"} {
		rec, err := testLayout.Parse(raw)
		require.NoError(t, err, raw)
		assert.False(t, rec.HasChecksum(), raw)
		lonDir, _ := rec.Field("lon_dir")
		assert.Equal(t, raw[len("$GPGLL,3751.65,S,14507.36,"):], lonDir, raw)
	}
}

func TestLayoutParse_EmptyType(t *testing.T) {
	_, err := testLayout.Parse("$,1,2")
	assert.ErrorIs(t, err, ErrEmptySentence)
}

func TestGLL_Accessors(t *testing.T) {
	rec, err := Parse("$GPGLL,3751.65,S,14507.36,E*77")
	require.NoError(t, err)
	gll, ok := rec.(*GLL)
	require.True(t, ok, "got %T", rec)

	lat, err := gll.Latitude()
	require.NoError(t, err)
	assert.Equal(t, 3751.65, lat)
	lon, err := gll.Longitude()
	require.NoError(t, err)
	assert.Equal(t, 14507.36, lon)

	dir, err := gll.LatDirection()
	require.NoError(t, err)
	assert.Equal(t, "South", dir)
	dir, err = gll.LonDirection()
	require.NoError(t, err)
	assert.Equal(t, "East", dir)

	decLat, decLon, err := gll.Position()
	require.NoError(t, err)
	assert.InDelta(t, -37.860833, decLat, 1e-5)
	assert.InDelta(t, 145.122667, decLon, 1e-5)
	assert.False(t, gll.Valid())
}

func TestDirectionName(t *testing.T) {
	for in, want := range map[string]string{"N": "North", "s": "South", "E": "East", "w": "West"} {
		got, err := DirectionName(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "X", "NE"} {
		_, err := DirectionName(in)
		assert.ErrorIs(t, err, ErrUnknownDirection, in)
	}
}

func TestGLL_UnknownDirection(t *testing.T) {
	rec, err := Parse("$GPGLL,3751.65,Q,14507.36,E")
	require.NoError(t, err)
	_, err = rec.(*GLL).LatDirection()
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

func TestRMC_Accessors(t *testing.T) {
	rec, err := Parse(nmeaLine("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"))
	require.NoError(t, err)
	rmc := rec.(*RMC)

	assert.True(t, rmc.Valid())
	lat, lon, err := rmc.Position()
	require.NoError(t, err)
	assert.InDelta(t, 48.1173, lat, 1e-4)
	assert.InDelta(t, 11.516667, lon, 1e-4)

	spd, err := rmc.SpeedKnots()
	require.NoError(t, err)
	assert.Equal(t, 22.4, spd)

	ts, err := rmc.Time()
	require.NoError(t, err)
	assert.Equal(t, time.Date(1994, 3, 23, 12, 35, 19, 0, time.UTC), ts)

	ok, err := rmc.VerifyChecksum()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGGA_Accessors(t *testing.T) {
	rec, err := Parse(nmeaLine("GNGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"))
	require.NoError(t, err)
	gga, ok := rec.(*GGA)
	require.True(t, ok, "talker GN should resolve to the GGA layout")
	assert.Equal(t, "GNGGA", gga.SentenceType())

	q, err := gga.FixQuality()
	require.NoError(t, err)
	assert.Equal(t, 1, q)
	n, err := gga.NumSatellites()
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	alt, err := gga.Altitude()
	require.NoError(t, err)
	assert.Equal(t, 545.4, alt)

	age, ok := gga.Field("age_gps_data")
	require.True(t, ok)
	assert.Equal(t, "", age)
	_, err = gga.float("age_gps_data")
	assert.ErrorIs(t, err, ErrFieldUnset)
}

func TestGSA_SatellitesUsed(t *testing.T) {
	rec, err := Parse("$GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1*39")
	require.NoError(t, err)
	gsa := rec.(*GSA)
	assert.Equal(t, []string{"04", "05", "09", "12", "24"}, gsa.SatellitesUsed())
	fix, err := gsa.FixType()
	require.NoError(t, err)
	assert.Equal(t, 3, fix)
	vdop, err := gsa.VDOP()
	require.NoError(t, err)
	assert.Equal(t, 2.1, vdop)
}

func TestGSV_Satellites(t *testing.T) {
	rec, err := Parse("$GPGSV,3,1,11,03,03,111,00,04,15,270,00,06,01,010,00,13,06,292,00*74")
	require.NoError(t, err)
	gsv := rec.(*GSV)

	n, err := gsv.NumInView()
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	sats := gsv.Satellites()
	require.Len(t, sats, 4)
	assert.Equal(t, SatelliteInView{PRN: "13", Elevation: "06", Azimuth: "292", SNR: "00"}, sats[3])
	assert.True(t, sats[0].Tracked())
}

func TestRTE_WaypointList(t *testing.T) {
	rec, err := Parse("$GPRTE,2,1,c,0,PBRCPK,PBRTO,PTELGR,PPLAND,PYAMBU,PPFAIR,PWARRN,PMORTL,PLISMR*73")
	require.NoError(t, err)
	rte := rec.(*RTE)

	assert.True(t, rte.Complete())
	assert.Equal(t, []string{"PBRCPK", "PBRTO", "PTELGR", "PPLAND", "PYAMBU", "PPFAIR", "PWARRN", "PMORTL", "PLISMR"}, rte.Waypoints())
	id, ok := rte.Field("active_route_id")
	require.True(t, ok)
	assert.Equal(t, "0", id)

	ok, err = rte.VerifyChecksum()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestR00_WaypointList(t *testing.T) {
	rec, err := Parse("$GPR00,EGLL,EGLM,EGTB,EGUB,EGTK,MBOT,EGTB,,,,,,,")
	require.NoError(t, err)
	r00 := rec.(*R00)
	wps := r00.Waypoints()
	require.Len(t, wps, 14)
	assert.Equal(t, "EGLL", wps[0])
	assert.Equal(t, "", wps[13])
}

func TestBOD_Accessors(t *testing.T) {
	rec, err := Parse("$GPBOD,045.,T,023.,M,DEST,START*01")
	require.NoError(t, err)
	bod := rec.(*BOD)
	assert.Equal(t, "045.,T", bod.BearingTrue())
	assert.Equal(t, "023.,M", bod.BearingMagnetic())
	assert.Equal(t, "DEST", bod.Destination())
	assert.Equal(t, "START", bod.Origin())
}

func TestBWC_Accessors(t *testing.T) {
	rec, err := Parse("$GPBWC,220516,5130.02,N,00046.34,W,213.8,T,218.0,M,0004.6,N,EGLM*21")
	require.NoError(t, err)
	bwc := rec.(*BWC)
	lat, lon, err := bwc.NextPosition()
	require.NoError(t, err)
	assert.InDelta(t, 51.500333, lat, 1e-5)
	assert.InDelta(t, -0.772333, lon, 1e-5)
	rng, err := bwc.Range()
	require.NoError(t, err)
	assert.Equal(t, 4.6, rng)
	assert.Equal(t, "EGLM", bwc.WaypointName())
}

func TestRMB_SteerDirection(t *testing.T) {
	rec, err := Parse("$GPRMB,A,0.66,L,003,004,4917.24,N,12309.57,W,001.3,052.5,000.5,V")
	require.NoError(t, err)
	rmb := rec.(*RMB)
	dir, err := rmb.SteerDirection()
	require.NoError(t, err)
	assert.Equal(t, "Left", dir)
	assert.False(t, rmb.Arrived())

	rec, err = Parse("$GPRMB,A,0.66,Q")
	require.NoError(t, err)
	_, err = rec.(*RMB).SteerDirection()
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

func TestZDA_Time(t *testing.T) {
	rec, err := Parse("$GPZDA,201530.00,04,07,2002,00,00*60")
	require.NoError(t, err)
	zda := rec.(*ZDA)
	ts, err := zda.Time()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2002, 7, 4, 20, 15, 30, 0, time.UTC), ts)
	zone, err := zda.LocalZone()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), zone)
}

func TestZDA_RejectsOutOfRangeDate(t *testing.T) {
	for _, raw := range []string{
		"$GPZDA,201530.00,04,13,2002,00,00",
		"$GPZDA,201530.00,04,00,2002,00,00",
		"$GPZDA,201530.00,32,07,2002,00,00",
		"$GPZDA,201530.00,00,07,2002,00,00",
	} {
		rec, err := Parse(raw)
		require.NoError(t, err, raw)
		_, err = rec.(*ZDA).Time()
		assert.ErrorContains(t, err, "out of range", raw)
	}
}

func TestZDA_LocalZoneSign(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"$GPZDA,201530.00,04,07,2002,-00,30", -30 * time.Minute},
		{"$GPZDA,201530.00,04,07,2002,-05,30", -(5*time.Hour + 30*time.Minute)},
		{"$GPZDA,201530.00,04,07,2002,05,45", 5*time.Hour + 45*time.Minute},
		{"$GPZDA,201530.00,04,07,2002,00,30", 30 * time.Minute},
	}
	for _, tc := range cases {
		rec, err := Parse(tc.raw)
		require.NoError(t, err, tc.raw)
		got, err := rec.(*ZDA).LocalZone()
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestHDG_SignedVariation(t *testing.T) {
	rec, err := Parse("$HCHDG,101.1,,,7.1,W")
	require.NoError(t, err)
	hdg := rec.(*HDG)
	v, err := hdg.Variation()
	require.NoError(t, err)
	assert.Equal(t, -7.1, v)
	_, err = hdg.Deviation()
	assert.ErrorIs(t, err, ErrFieldUnset)
}

func TestGarmin_Proprietary(t *testing.T) {
	rec, err := Parse("$PGRME,15.0,M,45.0,M,25.0,M*1C")
	require.NoError(t, err)
	pgrme := rec.(*PGRME)
	hpe, err := pgrme.HorizontalError()
	require.NoError(t, err)
	assert.Equal(t, 15.0, hpe)

	rec, err = Parse("$PGRMM,WGS 84")
	require.NoError(t, err)
	assert.Equal(t, "WGS 84", rec.(*PGRMM).Datum())
}

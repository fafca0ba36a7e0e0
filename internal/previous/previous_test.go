package previous

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
)

func encodeForTest(g geomutil.Geometry) []byte {
	buf := []byte{'G', 'P', 0, 0x01, 0, 0, 0, 0}
	buf = append(buf, 1)

	var wkbType uint32
	switch g.Type {
	case geomutil.GeometryTypePoint:
		wkbType = 1
	case geomutil.GeometryTypeLineString:
		wkbType = 2
	case geomutil.GeometryTypePolygon:
		wkbType = 3
	}
	typeBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(typeBuf, wkbType)
	buf = append(buf, typeBuf...)

	if g.Type == geomutil.GeometryTypePolygon {
		ring := make([]byte, 4)
		binary.LittleEndian.PutUint32(ring, 1)
		buf = append(buf, ring...)
	}
	if g.Type != geomutil.GeometryTypePoint {
		count := make([]byte, 4)
		binary.LittleEndian.PutUint32(count, uint32(len(g.Points)))
		buf = append(buf, count...)
	}
	for _, p := range g.Points {
		coord := make([]byte, 16)
		binary.LittleEndian.PutUint64(coord[0:8], math.Float64bits(p[0]))
		binary.LittleEndian.PutUint64(coord[8:16], math.Float64bits(p[1]))
		buf = append(buf, coord...)
	}
	return buf
}

func TestDecodeGPKGGeometryRoundTripsLineString(t *testing.T) {
	want := geomutil.Geometry{Type: geomutil.GeometryTypeLineString, Points: []geomutil.Coord{{1.5, 2.5}, {3.5, 4.5}}}
	got, err := decodeGPKGGeometry(encodeForTest(want))
	require.NoError(t, err)
	require.True(t, got.Equal(want), "got %+v, want %+v", got, want)
}

func TestDecodeGPKGGeometryRoundTripsPoint(t *testing.T) {
	want := geomutil.Geometry{Type: geomutil.GeometryTypePoint, Points: []geomutil.Coord{{-66.123, 45.456}}}
	got, err := decodeGPKGGeometry(encodeForTest(want))
	require.NoError(t, err)
	require.True(t, got.Equal(want), "got %+v, want %+v", got, want)
}

func TestDecodeGPKGGeometryRejectsBadMagic(t *testing.T) {
	_, err := decodeGPKGGeometry([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	require.Error(t, err, "expected an error for a non-GP-prefixed blob")
}

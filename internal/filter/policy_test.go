package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmccoystephenson/jpo-ppm/internal/bsm"
	"github.com/dmccoystephenson/jpo-ppm/internal/geo"
	"github.com/dmccoystephenson/jpo-ppm/internal/quadtree"
)

func rootBounds() geo.Bounds {
	return geo.Bounds{
		SW: geo.Point{Lat: 35.0, Lon: -85.0},
		NE: geo.Point{Lat: 36.5, Lon: -83.0},
	}
}

func coreDoc(t *testing.T, id string, lat, long int32, speed uint16) *bsm.Document {
	t.Helper()
	raw := `{"payload":{"data":{"coreData":{"id":"` + id + `","secMark":1,"lat":` +
		itoa(lat) + `,"long":` + itoa(long) + `,"speed":` + itoa(int32(speed)) + `}}}}`
	doc, err := bsm.Decode([]byte(raw))
	require.NoError(t, err)
	return doc
}

func itoa(v int32) string {
	if v < 0 {
		return "-" + itoa(-v)
	}
	if v == 0 {
		return "0"
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	return string(digits)
}

func treeWithCircle() *quadtree.Tree {
	tree := quadtree.New(rootBounds())
	tree.Insert(geo.Circle{IDValue: "c1", Center: geo.Point{Lat: 35.9606, Lon: -83.9207}, RadiusM: 1000})
	return tree
}

func TestDecideRetainsInsideCircle(t *testing.T) {
	policy := NewPolicy(treeWithCircle(), Inclusive)
	doc := coreDoc(t, "BEEF1234", 359610000, -839200000, 500)

	v := policy.Decide(doc)
	assert.True(t, v.Retained)
}

func TestDecideSuppressesOutsideGeofence(t *testing.T) {
	policy := NewPolicy(treeWithCircle(), Inclusive)
	doc := coreDoc(t, "BEEF1234", 360000000, -840000000, 500)

	v := policy.Decide(doc)
	assert.False(t, v.Retained)
	assert.Equal(t, ReasonOutsideGeofence, v.Reason)
}

func TestDecideSuppressesSpeedOutOfRange(t *testing.T) {
	policy := NewPolicy(treeWithCircle(), Inclusive)
	doc := coreDoc(t, "BEEF1234", 359610000, -839200000, 25)

	v := policy.Decide(doc)
	assert.False(t, v.Retained)
	assert.Equal(t, ReasonSpeedOutOfRange, v.Reason)
}

func TestDecideSuppressesInvalidID(t *testing.T) {
	policy := NewPolicy(treeWithCircle(), Inclusive)
	doc := coreDoc(t, "ZZZZZZZZ", 359610000, -839200000, 500)

	v := policy.Decide(doc)
	assert.False(t, v.Retained)
	assert.Equal(t, ReasonInvalidID, v.Reason)
}

func TestDecideExclusiveModeInvertsContainment(t *testing.T) {
	policy := NewPolicy(treeWithCircle(), Exclusive)
	inside := coreDoc(t, "BEEF1234", 359610000, -839200000, 500)
	outside := coreDoc(t, "BEEF1234", 360000000, -840000000, 500)

	assert.False(t, policy.Decide(inside).Retained)
	assert.True(t, policy.Decide(outside).Retained)
}

func TestDecideIsDeterministicForFixedTreeAndBytes(t *testing.T) {
	policy := NewPolicy(treeWithCircle(), Inclusive)
	raw := []byte(`{"payload":{"data":{"coreData":{"id":"BEEF1234","secMark":1,"lat":359610000,"long":-839200000,"speed":500}}}}`)

	var first Verdict
	for i := 0; i < 20; i++ {
		doc, err := bsm.Decode(raw)
		require.NoError(t, err)
		v := policy.Decide(doc)
		if i == 0 {
			first = v
			continue
		}
		assert.Equal(t, first.Retained, v.Retained)
		assert.Equal(t, first.Reason, v.Reason)
	}
}

func TestDecideMissingRequiredBeforeSpeedCheck(t *testing.T) {
	policy := NewPolicy(treeWithCircle(), Inclusive)
	raw := `{"payload":{"data":{"coreData":{"id":"BEEF1234","lat":359610000,"long":-839200000,"speed":500}}}}`
	doc, err := bsm.Decode([]byte(raw))
	require.NoError(t, err)

	v := policy.Decide(doc)
	assert.False(t, v.Retained)
	assert.Equal(t, ReasonMissingRequired, v.Reason)
}

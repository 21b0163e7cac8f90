package xmlobject

import (
	"bytes"
	"strings"
	"testing"

	"github.com/oneconcern/domx/pkg/errors"
	"github.com/oneconcern/domx/pkg/xmltime"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertHonda(t *testing.T, van *car, speed float64) {
	t.Helper()
	assert.Equal(t, "honda", van.getMake())
	assert.Equal(t, "odyssey", van.getModel())
	assert.Equal(t, speed, van.getSpeed())
	assert.Equal(t, 2, van.getAxles())
	assert.Equal(t, "brightwhite", van.Color.Get())
	assert.Equal(t, 2002, van.Year.Get())
}

func TestAssumeAndAssign(t *testing.T) {
	v := newVehicle()
	assert.Equal(t, float64(0), v.getSpeed())
	assert.Equal(t, 0, v.getAxles())

	c := newCar()
	c.Assume(v)
	assert.Equal(t, "xmlobject.vehicle.car", c.InterfaceName())
	assert.Equal(t, float64(0), c.getSpeed())
	assert.Equal(t, 0, c.getAxles())
	assert.Equal(t, "", c.getMake())
	assert.Equal(t, "", c.getModel())
	assert.Equal(t, "white", c.Color.Get())
	assert.Equal(t, 1986, c.Year.Get())
	assert.Equal(t, 543.21, c.Price.Get())

	// the car holds a copy, not the vehicle's document
	v.setSpeed(64)
	v.setAxles(2)
	assert.Equal(t, float64(0), c.getSpeed())
	assert.Equal(t, 0, c.getAxles())
	assert.Equal(t, float64(64), v.getSpeed())
	assert.Equal(t, 2, v.getAxles())

	makeMazda(c)
	c.Color.Set("dirty")
	assert.Equal(t, "mazda", c.getMake())
	assert.Equal(t, "323", c.getModel())
	assert.Equal(t, "dirty", c.Color.Get())

	// the vehicle has no car level, so the car level comes back with defaults
	c.Assume(v)
	assert.Equal(t, "", c.getMake())
	assert.Equal(t, "", c.getModel())
	assert.Equal(t, float64(64), c.getSpeed())
	assert.Equal(t, 2, c.getAxles())
	assert.Equal(t, 1986, c.Year.Get())
	assert.Equal(t, "white", c.Color.Get())

	// a car assigned to a vehicle keeps its car level in the document
	makeHonda(c)
	c.setSpeed(32)
	v.Assign(c)
	assert.Equal(t, float64(32), v.getSpeed())
	assert.Equal(t, 2, v.getAxles())

	van := newCar()
	van.Assume(v)
	assertHonda(t, van, 32)
}

func TestStoreAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()

	van := newCar()
	makeHonda(van)
	van.setSpeed(32)
	require.NoError(t, van.Store(fs, "van.xml"))

	van.Assume(newCar())
	assert.NotEqual(t, "honda", van.getMake())
	assert.NotEqual(t, "odyssey", van.getModel())

	require.NoError(t, van.Load(fs, "van.xml"))
	assertHonda(t, van, 32)

	require.Error(t, van.Load(fs, "missing.xml"))
	assertHonda(t, van, 32)
}

func TestBrokenLoadKeepsDocument(t *testing.T) {
	r := newRepairs()
	r.setSparkGap(0.2)

	err := r.FromXML("")
	require.Error(t, err)
	assert.Equal(t, 0.2, r.getSparkGap())

	err = r.FromXML("<xmlobject><vehicle>")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "fromXML", pe.SystemID)
	assert.Contains(t, pe.Error(), `Error at file "fromXML"`)
	assert.Equal(t, 0.2, r.getSparkGap())

	err = r.FromXML("<xmlobject>\n  <vehicle axles=2>\n</xmlobject>")
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
	assert.Greater(t, pe.Column, len("  <vehicle axles="))
	assert.Contains(t, pe.Error(), "line 2, column ")

	err = r.FromXML("<car/>")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRootElement))
	assert.Equal(t, 0.2, r.getSparkGap())
}

func TestTimeMember(t *testing.T) {
	fs := afero.NewMemMapFs()
	van := newCar()
	makeHonda(van)

	r := newRepairs()
	r.Assume(van)
	r.NextVisit.Set(xmltime.Unix(1276041409))
	assert.Equal(t, "20100608.235649", r.NextVisit.Get().Key())
	assert.Equal(t, "2010-06-08 23:56:49", r.NextVisit.Get().String())
	require.NoError(t, r.Store(fs, "vanrepairs.xml"))

	r.Assume(newRepairs())
	assert.True(t, r.NextVisit.Get().IsZero())

	require.NoError(t, r.Load(fs, "vanrepairs.xml"))
	assert.Equal(t, "20100608.235649", r.NextVisit.Get().Key())
	assert.Equal(t, "2010-06-08 23:56:49", r.NextVisit.Get().String())

	// the car level stored alongside the repairs survives
	c := newCar()
	c.Assume(r)
	assert.Equal(t, "honda", c.getMake())
}

func TestAttach(t *testing.T) {
	var obj Interface
	assert.Equal(t, "xmlobject", obj.InterfaceName())
	assert.Equal(t, Facet(&obj), obj.Lookup("xmlobject"))
	assert.Nil(t, obj.Lookup("vehicle"))

	vp, ok := Attach(&obj, newVehicle(), false)
	assert.False(t, ok)
	assert.Nil(t, vp)

	vp, ok = Attach(&obj, newVehicle(), true)
	require.True(t, ok)
	require.NotNil(t, vp)
	vp.setSpeed(75)
	assert.Equal(t, float64(75), vp.getSpeed())
	assert.Equal(t, "xmlobject.vehicle", vp.InterfaceName())
	assert.Contains(t, obj.String(), "<speed>75</speed>")

	again, ok := Attach(&obj, newVehicle(), false)
	require.True(t, ok)
	assert.Same(t, vp, again)
	assert.Equal(t, Facet(vp), obj.Lookup("xmlobject.vehicle"))
}

func TestAttachFromDocument(t *testing.T) {
	honda := newCar()
	makeHonda(honda)

	var generic Interface
	require.NoError(t, generic.FromXML(honda.String()))
	assert.False(t, generic.Implements(newRepairs()))
	assert.True(t, generic.Implements(newCar()))

	_, ok := Attach(&generic, newRepairs(), false)
	assert.False(t, ok)

	c, ok := Attach(&generic, newCar(), false)
	require.True(t, ok)
	assertHonda(t, c, 25)

	// facets share the document
	c.Color.Set("red")
	assert.Contains(t, generic.String(), "<color>red</color>")

	// a derived type implements its bases
	assert.True(t, newCar().Implements(newVehicle()))
	assert.True(t, newCar().Implements(New()))
	assert.False(t, newVehicle().Implements(newCar()))
}

func TestAssignSharedDocumentIsNoop(t *testing.T) {
	var obj Interface
	v, ok := Attach(&obj, newVehicle(), true)
	require.True(t, ok)
	v.setAxles(6)

	obj.Assign(v)
	assert.Equal(t, 6, v.getAxles())
}

func TestReset(t *testing.T) {
	c := newCar()
	makeHonda(c)
	c.Reset()
	assert.Equal(t, "", c.getMake())
	assert.Equal(t, "white", c.Color.Get())
	assert.Equal(t, float64(0), c.getSpeed())
}

func TestWriteXML(t *testing.T) {
	c := newCar()
	var buf bytes.Buffer
	require.NoError(t, c.WriteXML(&buf))
	text := buf.String()

	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, text, "<xmlobject>\n  <vehicle>\n    <speed>0</speed>")
	assert.Contains(t, text, "<color>white</color>")

	var again Interface
	require.NoError(t, again.ReadXML(strings.NewReader(text)))
	assert.Equal(t, text, again.String())
}

func TestStringPreservesSpaces(t *testing.T) {
	c := newCar()
	path := "this string has spaces"
	c.Color.Set(path)
	assert.Equal(t, path, c.Color.Get())

	loaded := newCar()
	require.NoError(t, loaded.FromXML(c.String()))
	assert.Equal(t, path, loaded.Color.Get())
}

func TestUnparsableMemberIsZero(t *testing.T) {
	c := newCar()
	c.node.SetText("year", "nineteen eighty six")
	assert.Equal(t, 0, c.Year.Get())
}

package xmlobject

import (
	"github.com/oneconcern/domx/pkg/xmltime"
)

type vehicle struct {
	Interface
	node  *Node
	speed *Member[float64]
	axles *Member[int]
}

func newVehicle() *vehicle {
	v := &vehicle{}
	v.initVehicle()
	return v
}

func (v *vehicle) initVehicle() {
	v.node = v.NewNode("vehicle", nil)
	v.speed = Float(v.node, "speed", 0)
	v.axles = Int(v.node, "axles", 0)
}

func (v *vehicle) setSpeed(f float64) { v.speed.Set(f) }
func (v *vehicle) getSpeed() float64  { return v.speed.Get() }
func (v *vehicle) setAxles(i int)     { v.axles.Set(i) }
func (v *vehicle) getAxles() int      { return v.axles.Get() }

type car struct {
	vehicle
	node  *Node
	Color *Member[string]
	Year  *Member[int]
	Price *Member[float64]
}

func newCar() *car {
	c := &car{}
	c.initVehicle()
	c.node = c.NewNode("car", func() {
		c.setMake("")
		c.setModel("")
	})
	c.Color = String(c.node, "color", "white")
	c.Year = Int(c.node, "year", 1986)
	c.Price = Float(c.node, "price", 543.21)
	return c
}

func (c *car) setMake(m string)  { c.node.SetText("make", m) }
func (c *car) getMake() string   { return c.node.GetText("make") }
func (c *car) setModel(m string) { c.node.SetText("model", m) }
func (c *car) getModel() string  { return c.node.GetText("model") }

type repairs struct {
	vehicle
	node      *Node
	NextVisit *Member[xmltime.Time]
}

func newRepairs() *repairs {
	r := &repairs{}
	r.initVehicle()
	r.node = r.NewNode("repairs", func() {
		r.setMechanicName("")
		r.setSparkGap(0)
	})
	r.NextVisit = Time(r.node, "nextvisit")
	return r
}

func (r *repairs) setMechanicName(name string) { r.node.SetText("mechanicname", name) }
func (r *repairs) setSparkGap(d float64)       { Set[float64](r.node, "sparkgap", FloatCodec{}, d) }
func (r *repairs) getSparkGap() float64        { return Get[float64](r.node, "sparkgap", FloatCodec{}) }

func makeMazda(c *car) {
	c.setAxles(2)
	c.setMake("mazda")
	c.setModel("323")
	c.Color.Set("white")
	c.Year.Set(1986)
}

func makeHonda(c *car) {
	c.setMake("honda")
	c.setModel("odyssey")
	c.setSpeed(25)
	c.setAxles(2)
	c.Color.Set("brightwhite")
	c.Year.Set(2002)
}

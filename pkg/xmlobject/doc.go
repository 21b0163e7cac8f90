// Copyright © 2018 One Concern

/*
Package xmlobject implements objects whose state is an XML document.

A type becomes an XML object by embedding Interface and declaring one level
of the object hierarchy with NewNode, then declaring its members on that
node:

	type Vehicle struct {
		xmlobject.Interface
		node  *xmlobject.Node
		Speed *xmlobject.Member[float64]
	}

	func NewVehicle() *Vehicle {
		v := &Vehicle{}
		v.node = v.NewNode("vehicle", nil)
		v.Speed = xmlobject.Float(v.node, "speed", 0)
		return v
	}

A derived type embeds its base and adds another node, so a Car built on a
Vehicle is stored as

	<xmlobject>
	  <vehicle>
	    <speed>0</speed>
	    <car>...</car>
	  </vehicle>
	</xmlobject>

and its interface name is "xmlobject.vehicle.car".

The document is created lazily. Several typed facets can share one document
(see Attach), and assigning one object to another copies the whole document,
so information held by levels a type does not know about survives a round
trip through that type.

Types embedding Interface must not be copied after NewNode has been called.
*/
package xmlobject

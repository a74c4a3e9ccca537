package queryable

import (
	"strconv"
	"strings"
)

// Collection is a collection-shaped resource: it supports the full set of
// OData query verbs. Its fluent methods mutate the underlying node and
// return the receiver.
type Collection struct {
	*Queryable
}

// NewCollection derives a collection node from a base URL string.
func NewCollection(base string, paths ...string) *Collection {
	return &Collection{New(base, paths...)}
}

// CollectionFrom derives a child collection from an existing node.
func CollectionFrom(parent *Queryable, paths ...string) *Collection {
	return &Collection{From(parent, paths...)}
}

// Filter sets the $filter expression.
func (c *Collection) Filter(expr string) *Collection {
	c.query.Add("$filter", expr)
	return c
}

// Select restricts the returned fields.
func (c *Collection) Select(fields ...string) *Collection {
	c.query.Add("$select", strings.Join(fields, ","))
	return c
}

// Expand includes the named navigation properties.
func (c *Collection) Expand(fields ...string) *Collection {
	c.query.Add("$expand", strings.Join(fields, ","))
	return c
}

// OrderBy appends a "<field> asc|desc" clause to any existing $orderby
// value; successive calls build a compound sort key.
func (c *Collection) OrderBy(field string, ascending bool) *Collection {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	clause := field + " " + dir
	if cur, ok := c.query.Get("$orderby"); ok && cur != "" {
		clause = cur + "," + clause
	}
	c.query.Add("$orderby", clause)
	return c
}

// Skip sets the number of items to skip.
func (c *Collection) Skip(n int) *Collection {
	c.query.Add("$skip", strconv.Itoa(n))
	return c
}

// Top caps the number of returned items.
func (c *Collection) Top(n int) *Collection {
	c.query.Add("$top", strconv.Itoa(n))
	return c
}

// Clone returns an independent copy so a fluent chain can branch without
// mutating shared state.
func (c *Collection) Clone() *Collection {
	return &Collection{c.Queryable.Clone()}
}

// Instance is a single-instance resource; only field shaping applies.
type Instance struct {
	*Queryable
}

// NewInstance derives an instance node from a base URL string.
func NewInstance(base string, paths ...string) *Instance {
	return &Instance{New(base, paths...)}
}

// InstanceFrom derives a child instance from an existing node.
func InstanceFrom(parent *Queryable, paths ...string) *Instance {
	return &Instance{From(parent, paths...)}
}

// Select restricts the returned fields.
func (i *Instance) Select(fields ...string) *Instance {
	i.query.Add("$select", strings.Join(fields, ","))
	return i
}

// Expand includes the named navigation properties.
func (i *Instance) Expand(fields ...string) *Instance {
	i.query.Add("$expand", strings.Join(fields, ","))
	return i
}

// Clone returns an independent copy of the instance node.
func (i *Instance) Clone() *Instance {
	return &Instance{i.Queryable.Clone()}
}

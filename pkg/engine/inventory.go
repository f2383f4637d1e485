package engine

// Position is a presentation-only canvas coordinate
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Tool is a declared technology asset
type Tool struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Category string    `json:"category" yaml:"category"`
	Layer    int       `json:"layer" yaml:"layer"`
	Risky    bool      `json:"risky" yaml:"risky"`
	Position *Position `json:"position,omitempty" yaml:"position,omitempty"`
}

func (t Tool) clone() Tool {
	if t.Position != nil {
		p := *t.Position
		t.Position = &p
	}
	return t
}

// Connection is an unordered pair of tool ids
type Connection struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

// Key returns an order-independent identity for the pair
func (c Connection) Key() string {
	if c.B < c.A {
		return c.B + "|" + c.A
	}
	return c.A + "|" + c.B
}

// Touches reports whether id is one of the endpoints
func (c Connection) Touches(id string) bool {
	return c.A == id || c.B == id
}

// Inventory holds tools and the connections between them
type Inventory struct {
	tools       []Tool
	connections []Connection
}

// Tool looks up a tool by id
func (inv *Inventory) Tool(id string) (Tool, bool) {
	for _, t := range inv.tools {
		if t.ID == id {
			return t.clone(), true
		}
	}
	return Tool{}, false
}

// AddTool appends a tool. It reports false when the id is already present.
func (inv *Inventory) AddTool(t Tool) bool {
	if _, exists := inv.Tool(t.ID); exists {
		return false
	}
	inv.tools = append(inv.tools, t.clone())
	return true
}

// RemoveTool deletes a tool and every connection touching it
func (inv *Inventory) RemoveTool(id string) bool {
	idx := -1
	for i, t := range inv.tools {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	tools := make([]Tool, 0, len(inv.tools)-1)
	tools = append(tools, inv.tools[:idx]...)
	inv.tools = append(tools, inv.tools[idx+1:]...)

	conns := make([]Connection, 0, len(inv.connections))
	for _, c := range inv.connections {
		if !c.Touches(id) {
			conns = append(conns, c)
		}
	}
	inv.connections = conns
	return true
}

// MoveTool updates a tool's position
func (inv *Inventory) MoveTool(id string, pos Position) bool {
	for i := range inv.tools {
		if inv.tools[i].ID == id {
			p := pos
			inv.tools[i].Position = &p
			return true
		}
	}
	return false
}

// AddConnection links two existing, distinct tools. Duplicate pairs in
// either order are ignored.
func (inv *Inventory) AddConnection(a, b string) bool {
	if a == b {
		return false
	}
	if _, ok := inv.Tool(a); !ok {
		return false
	}
	if _, ok := inv.Tool(b); !ok {
		return false
	}
	c := Connection{A: a, B: b}
	for _, existing := range inv.connections {
		if existing.Key() == c.Key() {
			return false
		}
	}
	inv.connections = append(inv.connections, c)
	return true
}

// RemoveConnection deletes the pair in either order
func (inv *Inventory) RemoveConnection(a, b string) bool {
	key := Connection{A: a, B: b}.Key()
	for i, c := range inv.connections {
		if c.Key() == key {
			conns := make([]Connection, 0, len(inv.connections)-1)
			conns = append(conns, inv.connections[:i]...)
			inv.connections = append(conns, inv.connections[i+1:]...)
			return true
		}
	}
	return false
}

// Tools returns a copy of the tools in insertion order
func (inv *Inventory) Tools() []Tool {
	out := make([]Tool, len(inv.tools))
	for i, t := range inv.tools {
		out[i] = t.clone()
	}
	return out
}

// Connections returns a copy of the connections in insertion order
func (inv *Inventory) Connections() []Connection {
	out := make([]Connection, len(inv.connections))
	copy(out, inv.connections)
	return out
}

// ToolCount returns the number of tools
func (inv *Inventory) ToolCount() int {
	return len(inv.tools)
}

// ConnectionCount returns the number of connections
func (inv *Inventory) ConnectionCount() int {
	return len(inv.connections)
}

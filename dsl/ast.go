package dsl

// Pos is the source position an AST node originated from.
type Pos struct {
	Line   int
	Column int
}

// Role distinguishes listening connectors from initiating ones.
type Role int

const (
	// RoleServer is the default connector role (listens).
	RoleServer Role = iota
	// RoleClient marks a connector declared with a leading '*' (initiates).
	RoleClient
)

func (r Role) String() string {
	if r == RoleClient {
		return "client"
	}
	return "server"
}

// Protocol is the transport protocol of a port specification.
type Protocol int

const (
	// ProtocolTCP is the default protocol.
	ProtocolTCP Protocol = iota
	// ProtocolUDP is selected by a UDP(...) wrapper.
	ProtocolUDP
)

func (p Protocol) String() string {
	if p == ProtocolUDP {
		return "UDP"
	}
	return "TCP"
}

// PortRange is an inclusive port range. The parser records the bounds
// verbatim and does not check that End >= Start.
type PortRange struct {
	Start int
	End   int
}

// PortSpec binds a connector to a single port or a port range.
// Range is nil for a single port.
type PortSpec struct {
	Protocol Protocol
	Port     int
	Range    *PortRange
	Pos      Pos
}

// Connector is a named communication endpoint on a node class.
// An empty Ports slice means an ephemeral/unspecified port, which is
// valid for either role.
type Connector struct {
	Role  Role
	Name  string
	Ports []PortSpec
	Pos   Pos
}

// NodeClass is a reusable template for an architectural entity.
// Name uniqueness is not enforced.
type NodeClass struct {
	Name       string
	Connectors []Connector
	Pos        Pos
}

// Endpoint names a connector on a node class. Both names are recorded
// verbatim; cross-reference validation is a consumer concern.
type Endpoint struct {
	NodeClass string
	Connector string
}

// LinkClass declares a permitted connection pattern, not a deployed edge.
type LinkClass struct {
	From Endpoint
	To   Endpoint
	Pos  Pos
}

// InstanceEntry is one concrete deployment, optionally annotated with an
// IP literal. The IP is stored as the verbatim dotted string.
type InstanceEntry struct {
	Name string
	IP   string
	Pos  Pos
}

// Instance groups one or more deployments of a node class.
type Instance struct {
	NodeClass string
	Entries   []InstanceEntry
	Pos       Pos
}

// NAT is a named address-translation record, addressable as a connection
// endpoint by name exactly like an instance entry.
type NAT struct {
	Name       string
	ExternalIP string
	InternalIP string
	Pos        Pos
}

// Connection is a concrete edge between two named entities. Endpoints are
// bare names; existence is not verified at parse time.
type Connection struct {
	From string
	To   string
	Pos  Pos
}

// Include records an include directive. Every directive encountered is
// recorded, including ones skipped as duplicates.
type Include struct {
	Path string
	Pos  Pos
}

// AST is the parse result. All collections preserve insertion order,
// which downstream rendering depends on for determinism.
type AST struct {
	Includes    []Include
	NodeClasses []NodeClass
	LinkClasses []LinkClass
	Instances   []Instance
	NATs        []NAT
	Connections []Connection
}

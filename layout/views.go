package layout

import "github.com/riolet/sadl/dsl"

// SchemaView projects an AST onto the schema view: one node per node
// class, one edge per link class (by node-class name).
func SchemaView(ast *dsl.AST) ([]Node, []Edge) {
	nodes := make([]Node, 0, len(ast.NodeClasses))
	for _, nc := range ast.NodeClasses {
		nodes = append(nodes, Node{
			Name:             nc.Name,
			Kind:             KindNodeClass,
			ServerConnectors: connectorNames(nc, dsl.RoleServer),
			ClientConnectors: connectorNames(nc, dsl.RoleClient),
		})
	}
	edges := make([]Edge, 0, len(ast.LinkClasses))
	for _, lc := range ast.LinkClasses {
		edges = append(edges, Edge{From: lc.From.NodeClass, To: lc.To.NodeClass})
	}
	return nodes, edges
}

// InstancesView projects an AST onto the instances view: one node per
// instance entry plus one per NAT record, edges from connections. Instance
// nodes borrow the connector labels of their declared node class (first
// declaration wins) and carry their IP as detail; NAT nodes carry the
// address mapping.
func InstancesView(ast *dsl.AST) ([]Node, []Edge) {
	classes := make(map[string]dsl.NodeClass, len(ast.NodeClasses))
	for _, nc := range ast.NodeClasses {
		if _, ok := classes[nc.Name]; !ok {
			classes[nc.Name] = nc
		}
	}

	var nodes []Node
	for _, inst := range ast.Instances {
		nc, ok := classes[inst.NodeClass]
		for _, entry := range inst.Entries {
			node := Node{
				Name:   entry.Name,
				Kind:   KindInstance,
				Detail: entry.IP,
			}
			if ok {
				node.ServerConnectors = connectorNames(nc, dsl.RoleServer)
				node.ClientConnectors = connectorNames(nc, dsl.RoleClient)
			}
			nodes = append(nodes, node)
		}
	}
	for _, nat := range ast.NATs {
		nodes = append(nodes, Node{
			Name:   nat.Name,
			Kind:   KindNAT,
			Detail: nat.ExternalIP + " -> " + nat.InternalIP,
		})
	}

	edges := make([]Edge, 0, len(ast.Connections))
	for _, conn := range ast.Connections {
		edges = append(edges, Edge{From: conn.From, To: conn.To})
	}
	return nodes, edges
}

func connectorNames(nc dsl.NodeClass, role dsl.Role) []string {
	var names []string
	for _, conn := range nc.Connectors {
		if conn.Role == role {
			names = append(names, conn.Name)
		}
	}
	return names
}

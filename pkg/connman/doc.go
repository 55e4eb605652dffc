// Package connman provides typed access to the ConnMan D-Bus API.
//
// The package has three layers:
//
//   - Entity property assemblers turn a raw property snapshot into
//     ManagerProperties, TechnologyProperties or ServiceProperties.
//     Required fields are extracted first, in a fixed order, and the
//     first failure aborts the assembly; no partial entity is returned.
//   - Composite decoders (IPv4, IPv6, Proxy, Provider, Ethernet) decode
//     nested configuration blocks leniently: an unknown or malformed
//     sub-field is left nil and never fails the containing entity.
//   - Thin wrappers (Manager, Technology, Service) issue remote calls
//     through a Caller and decode the replies with the assemblers.
//
// # Usage
//
//	conn, err := transport.Dial(ctx, transport.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	manager := connman.NewManager(conn)
//
//	techs, err := manager.Technologies(ctx)
//	for _, t := range techs {
//	    if t.Props.Type == connman.TechnologyTypeWifi {
//	        err = t.Scan(ctx)
//	    }
//	}
//
// The low-level per-interface stubs in connman_gen.go are generated by
// cmd/connman-gen from api/connman.yaml.
package connman

//go:generate go run ../../cmd/connman-gen -api ../../api/connman.yaml -output connman_gen.go

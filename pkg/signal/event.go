package signal

import (
	"encoding/json"

	"github.com/connman-go/connman/pkg/connman"
	"github.com/connman-go/connman/pkg/variant"
)

// Message is one raw signal as received from the bus.
type Message struct {
	Sender    string             `cbor:"1,keyasint,omitempty" json:"sender,omitempty"`
	Path      variant.ObjectPath `cbor:"2,keyasint" json:"path"`
	Interface string             `cbor:"3,keyasint" json:"interface"`
	Member    string             `cbor:"4,keyasint" json:"member"`
	Args      []variant.Value    `cbor:"5,keyasint,omitempty" json:"args,omitempty"`
}

// Event is a decoded signal.
type Event interface {
	Kind() Kind
}

// Compile-time interface satisfaction checks.
var (
	_ Event = ManagerPropertyChanged{}
	_ Event = TechnologyAdded{}
	_ Event = TechnologyRemoved{}
	_ Event = ServicesChanged{}
	_ Event = PeersChanged{}
	_ Event = TetheringClientsChanged{}
	_ Event = TechnologyPropertyChanged{}
	_ Event = ServicePropertyChanged{}
)

// ManagerPropertyChanged reports a changed manager property. Value is a
// connman.ManagerState for State and a bool otherwise.
type ManagerPropertyChanged struct {
	Property connman.ManagerProperty `json:"-"`
	Name     string                  `json:"name"`
	Value    any                     `json:"value"`
}

// TechnologyAdded reports a new technology with its full properties.
type TechnologyAdded struct {
	Path       variant.ObjectPath           `json:"path"`
	Properties connman.TechnologyProperties `json:"properties"`
}

// TechnologyRemoved reports a technology that went away.
type TechnologyRemoved struct {
	Path variant.ObjectPath `json:"path"`
}

// ServicesChanged carries the services in their new order. Each entry
// holds only the properties that changed; services whose properties are
// unchanged have an empty map.
type ServicesChanged struct {
	Changed []connman.Object     `json:"changed"`
	Removed []variant.ObjectPath `json:"removed"`
}

// PeersChanged has the same shape as ServicesChanged, for P2P peers.
type PeersChanged struct {
	Changed []connman.Object     `json:"changed"`
	Removed []variant.ObjectPath `json:"removed"`
}

// TetheringClientsChanged lists the MAC addresses of tethering clients
// that joined or left.
type TetheringClientsChanged struct {
	Registered []string `json:"registered"`
	Removed    []string `json:"removed"`
}

// TechnologyPropertyChanged reports a changed technology property.
type TechnologyPropertyChanged struct {
	Path     variant.ObjectPath         `json:"path"`
	Property connman.TechnologyProperty `json:"-"`
	Name     string                     `json:"name"`
	Value    any                        `json:"value"`
}

// MarshalJSON omits the value of a changed tethering passphrase.
func (e TechnologyPropertyChanged) MarshalJSON() ([]byte, error) {
	type plain TechnologyPropertyChanged
	if e.Property != connman.TechnologyPropertyTetheringPassphrase {
		return json.Marshal(plain(e))
	}
	return json.Marshal(struct {
		Path     variant.ObjectPath `json:"path"`
		Name     string             `json:"name"`
		Redacted bool               `json:"redacted"`
	}{e.Path, e.Name, true})
}

// ServicePropertyChanged reports a changed service property. Composite
// properties carry connman.IPv4, connman.IPv6, connman.Proxy,
// connman.Provider or connman.Ethernet values.
type ServicePropertyChanged struct {
	Path     variant.ObjectPath      `json:"path"`
	Property connman.ServiceProperty `json:"-"`
	Name     string                  `json:"name"`
	Value    any                     `json:"value"`
}

func (ManagerPropertyChanged) Kind() Kind    { return KindManagerPropertyChanged }
func (TechnologyAdded) Kind() Kind           { return KindTechnologyAdded }
func (TechnologyRemoved) Kind() Kind         { return KindTechnologyRemoved }
func (ServicesChanged) Kind() Kind           { return KindServicesChanged }
func (PeersChanged) Kind() Kind              { return KindPeersChanged }
func (TetheringClientsChanged) Kind() Kind   { return KindTetheringClientsChanged }
func (TechnologyPropertyChanged) Kind() Kind { return KindTechnologyPropertyChanged }
func (ServicePropertyChanged) Kind() Kind    { return KindServicePropertyChanged }

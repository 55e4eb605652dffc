package signal

import (
	"github.com/connman-go/connman/pkg/connman"
)

// Scope is the entity kind a signal belongs to.
type Scope uint8

const (
	ScopeUnknown Scope = iota
	ScopeManager
	ScopeTechnology
	ScopeService
)

// ScopeOf maps a D-Bus interface name to its scope.
func ScopeOf(iface string) Scope {
	switch iface {
	case connman.ManagerInterface:
		return ScopeManager
	case connman.TechnologyInterface:
		return ScopeTechnology
	case connman.ServiceInterface:
		return ScopeService
	default:
		return ScopeUnknown
	}
}

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeManager:
		return "manager"
	case ScopeTechnology:
		return "technology"
	case ScopeService:
		return "service"
	default:
		return "unknown"
	}
}

// MarshalText renders the scope name in JSON.
func (s Scope) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Kind identifies a signal within its scope. Every signal name has its
// own Kind.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindManagerPropertyChanged
	KindTechnologyAdded
	KindTechnologyRemoved
	KindServicesChanged
	KindPeersChanged
	KindTetheringClientsChanged
	KindTechnologyPropertyChanged
	KindServicePropertyChanged
)

// Kind maps a member name to the signal kind of this scope.
func (s Scope) Kind(member string) Kind {
	switch s {
	case ScopeManager:
		switch member {
		case "PropertyChanged":
			return KindManagerPropertyChanged
		case "TechnologyAdded":
			return KindTechnologyAdded
		case "TechnologyRemoved":
			return KindTechnologyRemoved
		case "ServicesChanged":
			return KindServicesChanged
		case "PeersChanged":
			return KindPeersChanged
		case "TetheringClientsChanged":
			return KindTetheringClientsChanged
		}
	case ScopeTechnology:
		if member == "PropertyChanged" {
			return KindTechnologyPropertyChanged
		}
	case ScopeService:
		if member == "PropertyChanged" {
			return KindServicePropertyChanged
		}
	}
	return KindUnknown
}

// Scope returns the scope the kind belongs to.
func (k Kind) Scope() Scope {
	switch k {
	case KindManagerPropertyChanged, KindTechnologyAdded, KindTechnologyRemoved,
		KindServicesChanged, KindPeersChanged, KindTetheringClientsChanged:
		return ScopeManager
	case KindTechnologyPropertyChanged:
		return ScopeTechnology
	case KindServicePropertyChanged:
		return ScopeService
	default:
		return ScopeUnknown
	}
}

// Member returns the D-Bus member name of the kind.
func (k Kind) Member() string {
	switch k {
	case KindManagerPropertyChanged, KindTechnologyPropertyChanged, KindServicePropertyChanged:
		return "PropertyChanged"
	case KindTechnologyAdded:
		return "TechnologyAdded"
	case KindTechnologyRemoved:
		return "TechnologyRemoved"
	case KindServicesChanged:
		return "ServicesChanged"
	case KindPeersChanged:
		return "PeersChanged"
	case KindTetheringClientsChanged:
		return "TetheringClientsChanged"
	default:
		return ""
	}
}

// String returns "scope.Member", or "unknown".
func (k Kind) String() string {
	if k == KindUnknown || k > KindServicePropertyChanged {
		return "unknown"
	}
	return k.Scope().String() + "." + k.Member()
}

// MarshalText renders the kind name in JSON.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Outcome is the terminal state of one classified message.
type Outcome uint8

const (
	OutcomeDecoded Outcome = iota
	OutcomeNotApplicable
	OutcomeMalformed
)

// String returns the outcome name, used as a metric label.
func (o Outcome) String() string {
	switch o {
	case OutcomeDecoded:
		return "decoded"
	case OutcomeNotApplicable:
		return "not_applicable"
	case OutcomeMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

package model

import "sort"

// ServiceType is a ROT/RUT service code. Codes up to and including
// LastROTService are ROT (renovation), everything above is RUT (household).
type ServiceType int

// LastROTService is the highest ROT service code.
const LastROTService ServiceType = 6

const (
	ServiceBygg ServiceType = iota
	ServiceEl
	ServiceGlasPlat
	ServiceMarkDranering
	ServiceMurning
	ServiceMalningTapetsering
	ServiceVVS

	ServiceStadning
	ServiceKladTextilvard
	ServiceSnoskottning
	ServiceTradgardsarbete
	ServiceBarnpassning
	ServicePersonligOmsorg
	ServiceFlyttjanster
	ServiceITTjanster
	ServiceReparationVitvaror
	ServiceMoblering
	ServiceTillsynBostad
	ServiceTransportForsaljning
	ServiceTvattinrattning
)

var serviceNames = map[ServiceType]string{
	ServiceBygg:               "Bygg",
	ServiceEl:                 "El",
	ServiceGlasPlat:           "Glas och plåt",
	ServiceMarkDranering:      "Mark- och dräneringsarbete",
	ServiceMurning:            "Murning",
	ServiceMalningTapetsering: "Målning och tapetsering",
	ServiceVVS:                "VVS",

	ServiceStadning:             "Städning",
	ServiceKladTextilvard:       "Kläd- och textilvård",
	ServiceSnoskottning:         "Snöskottning",
	ServiceTradgardsarbete:      "Trädgårdsarbete",
	ServiceBarnpassning:         "Barnpassning",
	ServicePersonligOmsorg:      "Personlig omsorg",
	ServiceFlyttjanster:         "Flyttjänster",
	ServiceITTjanster:           "IT-tjänster",
	ServiceReparationVitvaror:   "Reparation av vitvaror",
	ServiceMoblering:            "Möblering",
	ServiceTillsynBostad:        "Tillsyn av bostad",
	ServiceTransportForsaljning: "Transport till försäljning",
	ServiceTvattinrattning:      "Tvätt vid tvättinrättning",
}

// ReductionKind separates the two Swedish tax-reduction schemes.
type ReductionKind string

const (
	ReductionROT ReductionKind = "ROT"
	ReductionRUT ReductionKind = "RUT"
)

// IsROT reports whether s is a renovation service.
func (s ServiceType) IsROT() bool { return s <= LastROTService }

// IsRUT reports whether s is a household service.
func (s ServiceType) IsRUT() bool { return s > LastROTService }

// Kind returns the reduction scheme the service belongs to.
func (s ServiceType) Kind() ReductionKind {
	if s.IsROT() {
		return ReductionROT
	}
	return ReductionRUT
}

// String returns the Swedish service name, or "" for unknown codes.
func (s ServiceType) String() string {
	return serviceNames[s]
}

// Services returns the catalog entries of one scheme ordered by code.
func Services(kind ReductionKind) []ServiceType {
	var out []ServiceType
	for s := range serviceNames {
		if s.Kind() == kind {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

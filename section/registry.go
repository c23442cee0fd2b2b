package section

// The registry maps secID to a payload factory. It is assembled once at
// package init and read-only afterwards, so concurrent decoders can share
// it without locking.
var registry = map[uint32]func() Payload{
	SecGrpID:          func() Payload { return &Group{} },
	SecEOFID:          func() Payload { return &EOF{} },
	SecCmtID:          func() Payload { return &Comment{} },
	SecGenRunDescID:   func() Payload { return &RunDesc{} },
	SecTriTiRunDescID: func() Payload { return &TIRunDesc{} },
	SecGenHistHdrID:   func() Payload { return &HistHdr{} },
	SecTriTdHistID:    func() Payload { return &HistHdr{} },
	SecTriTiHistID:    func() Payload { return &HistHdr{} },
	SecGenHistDatID:   func() Payload { return &HistDat{} },
	SecGenHistSPBID:   func() Payload { return &HistSecondsPerBin{} },
	SecGenScalerID:    func() Payload { return &Scaler{} },
	SecTriTdScalerID:  func() Payload { return &Scaler{} },
	SecGenIndVarID:    func() Payload { return &IndVar{} },
	SecGenIndVarArrID: func() Payload { return &IndVarArr{} },
}

// Registered reports whether secID has a payload codec in the registry.
func Registered(secID uint32) bool {
	_, ok := registry[secID]

	return ok
}

// New creates a section of the given type with a zero-initialized payload.
// Unregistered secIDs yield an Opaque payload, which preserves the raw
// bytes across a decode/encode round trip.
func New(secID, instanceID uint32) *Section {
	var payload Payload
	if factory, ok := registry[secID]; ok {
		payload = factory()
	} else {
		payload = &Opaque{}
	}

	return &Section{
		Core:    Core{SecID: secID, InstanceID: instanceID},
		Payload: payload,
	}
}

// NewGroup creates an empty group section of the given group type.
func NewGroup(groupID uint32) *Section {
	return New(SecGrpID, groupID)
}

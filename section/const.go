package section

// CoreSize is the on-wire size of a section Core: four serialized fields
// plus the two legacy in-memory slots, written as zero and ignored on read.
const CoreSize = 24

// Section and format identifiers. Group sections carry SecGrpID as their
// secID; the group type travels in the instanceID (the outer file group
// uses the format ID there).
const (
	SecGrpID uint32 = 0x00000003
	SecEOFID uint32 = 0x0000000A
	SecCmtID uint32 = 0x00000010

	// File format IDs (instanceID of the outer group).
	FmtGenID   uint32 = 0x47454E00 // generic
	FmtTriTdID uint32 = 0x54524900 // TRIUMF time-differential
	FmtTriTiID uint32 = 0x54524980 // TRIUMF time-integral

	// Generic section catalogue.
	SecGenRunDescID   uint32 = 0x47454E01
	SecGenHistHdrID   uint32 = 0x47454E02
	SecGenHistDatID   uint32 = 0x47454E03
	SecGenScalerID    uint32 = 0x47454E04
	SecGenIndVarID    uint32 = 0x47454E05
	SecGenIndVarArrID uint32 = 0x47454E07
	// Auxiliary seconds-per-bin section, emitted when fsPerBin cannot
	// represent the exact bin interval.
	SecGenHistSPBID   uint32 = 0x47454E08

	// TRIUMF section catalogue.
	SecTriTdHistID    uint32 = 0x54524901
	SecTriTdScalerID  uint32 = 0x54524902
	SecTriTiRunDescID uint32 = 0x54524981
	SecTriTiHistID    uint32 = 0x54524982

	// Group type IDs (instanceID of inner groups).
	GrpGenHistID      uint32 = 0x47525001
	GrpTriTdHistID    uint32 = 0x47525002
	GrpTriTiHistID    uint32 = 0x47525003
	GrpGenScalerID    uint32 = 0x47525004
	GrpTriTdScalerID  uint32 = 0x47525005
	GrpGenIndVarID    uint32 = 0x47525006
	GrpGenIndVarArrID uint32 = 0x47525007
	GrpCmtID          uint32 = 0x47525008
)

// FormatIDs lists the instance IDs accepted for the outer file group.
var FormatIDs = []uint32{FmtGenID, FmtTriTdID, FmtTriTiID}

// IsFormatID reports whether id is a registered file-format ID.
func IsFormatID(id uint32) bool {
	for _, f := range FormatIDs {
		if id == f {
			return true
		}
	}

	return false
}

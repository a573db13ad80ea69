// Package telegram interprets validated physical frame byte sequences
// according to the MVB format tables: master F-code, slave CRC layout, and
// telegram-type dispatch (IEC 61375-3-1 §3).
package telegram

// AddressType classifies how a master frame's 12-bit address field is
// interpreted (Table 53).
type AddressType int

const (
	AddressNone AddressType = iota
	AddressLogical
	AddressDevice
	AddressAllDevices
	AddressDeviceGroup
)

// MasterRequest is the telegram type requested by the master (Table 53).
type MasterRequest int

const (
	RequestProcessData MasterRequest = iota
	RequestReserved
	RequestMastershipTransfer
	RequestGeneralEvent
	RequestMessageData
	RequestGroupEvent
	RequestSingleEvent
	RequestDeviceStatus
)

// SlaveFrameSource classifies which device(s) may source the slave reply.
type SlaveFrameSource int

const (
	SourceNone SlaveFrameSource = iota
	SourceSingle
	SourceProposedMaster
	SourceDeviceGroup
	SourceSubscribedSource
)

// SlaveResponse is the telegram type a slave frame carries in reply.
type SlaveResponse int

const (
	ResponseNone SlaveResponse = iota
	ResponseProcessData
	ResponseMastershipTransfer
	ResponseEventIdentifier
	ResponseMessageData
	ResponseDeviceStatus
)

// SlaveFrameDestination classifies who receives the slave reply.
type SlaveFrameDestination int

const (
	DestinationNone SlaveFrameDestination = iota
	DestinationSubscribedSinks
	DestinationMaster
	DestinationSelectedDevices
	DestinationMasterOrMonitor
)

// FCode is one entry of the 4-bit function code table (Table 53),
// exhaustive over [0,15].
type FCode struct {
	N                      int
	AddressType            AddressType
	MasterRequest          MasterRequest
	SlaveFrameSource       SlaveFrameSource
	SlaveFrameSizeBits     int
	SlaveResponse          SlaveResponse
	SlaveFrameDestination  SlaveFrameDestination
}

// FCodes is the static, exhaustive Table 53 lookup, indexed by the 4 high
// bits of master byte 0.
var FCodes = [16]FCode{
	0:  {0, AddressLogical, RequestProcessData, SourceSubscribedSource, 16, ResponseProcessData, DestinationSubscribedSinks},
	1:  {1, AddressLogical, RequestProcessData, SourceSubscribedSource, 32, ResponseProcessData, DestinationSubscribedSinks},
	2:  {2, AddressLogical, RequestProcessData, SourceSubscribedSource, 64, ResponseProcessData, DestinationSubscribedSinks},
	3:  {3, AddressLogical, RequestProcessData, SourceSubscribedSource, 128, ResponseProcessData, DestinationSubscribedSinks},
	4:  {4, AddressLogical, RequestProcessData, SourceSubscribedSource, 256, ResponseProcessData, DestinationSubscribedSinks},
	5:  {5, AddressNone, RequestReserved, SourceNone, 0, ResponseNone, DestinationNone},
	6:  {6, AddressNone, RequestReserved, SourceNone, 0, ResponseNone, DestinationNone},
	7:  {7, AddressNone, RequestReserved, SourceNone, 0, ResponseNone, DestinationNone},
	8:  {8, AddressDevice, RequestMastershipTransfer, SourceProposedMaster, 16, ResponseMastershipTransfer, DestinationMaster},
	9:  {9, AddressAllDevices, RequestGeneralEvent, SourceDeviceGroup, 16, ResponseEventIdentifier, DestinationMaster},
	10: {10, AddressDevice, RequestReserved, SourceNone, 0, ResponseNone, DestinationNone},
	11: {11, AddressDevice, RequestReserved, SourceNone, 0, ResponseNone, DestinationNone},
	12: {12, AddressDevice, RequestMessageData, SourceSingle, 256, ResponseMessageData, DestinationSelectedDevices},
	13: {13, AddressDeviceGroup, RequestGroupEvent, SourceDeviceGroup, 16, ResponseEventIdentifier, DestinationMaster},
	14: {14, AddressDevice, RequestSingleEvent, SourceSingle, 16, ResponseEventIdentifier, DestinationMaster},
	15: {15, AddressDevice, RequestDeviceStatus, SourceSingle, 16, ResponseDeviceStatus, DestinationMasterOrMonitor},
}

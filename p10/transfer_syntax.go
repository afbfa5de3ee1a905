package p10

import (
	"github.com/dcmforge/dicom/dcmerr"
	"github.com/dcmforge/dicom/uid"
)

// TransferSyntax describes how element headers and numeric payloads are
// encoded for the main dataset. File Meta Information always uses Explicit
// VR Little Endian regardless of this value, per Part 10 Section 7.1.
type TransferSyntax struct {
	UID        string
	ExplicitVR bool
	BigEndian  bool
	Deflated   bool
}

// ExplicitVRLittleEndian is the default transfer syntax assumed when no
// (0002,0010) element is present, e.g. when parsing a raw dataset fragment.
var ExplicitVRLittleEndian = TransferSyntax{
	UID:        uid.ExplicitVRLittleEndian.String(),
	ExplicitVR: true,
}

// ResolveTransferSyntax maps a Transfer Syntax UID to its wire encoding.
// Every transfer syntax other than Implicit VR Little Endian, Explicit VR
// Big Endian, and Deflated Explicit VR Little Endian uses Explicit VR
// Little Endian element framing - that includes every compressed transfer
// syntax, whose pixel data fragments are opaque codec bytes to this layer
// regardless of codec. Returns DataInvalid if tsUID is not a registered
// transfer syntax UID at all.
func ResolveTransferSyntax(tsUID string) (TransferSyntax, error) {
	switch tsUID {
	case uid.ImplicitVRLittleEndian.String():
		return TransferSyntax{UID: tsUID, ExplicitVR: false}, nil
	case uid.ExplicitVRBigEndian.String():
		return TransferSyntax{UID: tsUID, ExplicitVR: true, BigEndian: true}, nil
	case uid.DeflatedExplicitVRLittleEndian.String():
		return TransferSyntax{UID: tsUID, ExplicitVR: true, Deflated: true}, nil
	}
	if !uid.IsTransferSyntax(tsUID) {
		return TransferSyntax{}, dcmerr.New(dcmerr.DataInvalid, "unknown transfer syntax UID %q", tsUID)
	}
	return TransferSyntax{UID: tsUID, ExplicitVR: true}, nil
}

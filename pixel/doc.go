// Package pixel locates PixelData element (7FE0,0010) frame boundaries and
// hands back each frame's raw bytes, still codec-compressed for an
// encapsulated transfer syntax. It does not decode JPEG, JPEG2000, JPEG
// Lossless, HTJ2K, or RLE bitstreams, and it does not perform per-pixel
// color-space or LUT conversion - those belong to a decoder built on top of
// this package, not inside it.
//
// # Basic Usage
//
// Extract per-frame pixel bytes from a DICOM dataset:
//
//	ds, err := dicom.ParseFile("ct_image.dcm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	raw, err := pixel.Extract(ds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%d frame(s), %d bytes/frame (native)\n",
//	    len(raw.Frames), raw.Info.BytesPerFrame())
//
// # Frame Boundary Resolution
//
// Extract delegates to Framer, which resolves frame boundaries without
// touching codec bytes:
//
//   - Native (uncompressed) data is split by BytesPerFrame, bit-packing
//     1-bit pixel data per DICOM PS3.5 Section 8.1.1.
//   - Encapsulated data uses the Basic Offset Table when present; failing
//     that, a single declared frame takes every fragment, and more than one
//     frame with no offset table falls back to JPEG EOI-marker grouping.
//
// Framer.FramesFromItems works directly from the Basic Offset Table and
// fragment items a *value.EncapsulatedPixelData already carries, with no
// need to re-serialize back to the P10 item-stream wire format; Framer.Frames
// covers the wire-format case directly for callers holding raw item-stream
// bytes.
package pixel

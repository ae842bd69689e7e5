// Package owf implements the Open Wire Format (OWF) data model: the
// ownership hierarchy of Package, Channel, Namespace, Signal, Event, and
// Alarm entities that the codec package decodes into and encodes from.
//
// Every entity here owns its children and its strings outright; there is
// no shared ownership and no back-references, so NewPackage together with
// the New* constructors and Push* calls is the entire construction API a
// caller needs. Zero-value entities are not ready for use: their cached
// size reads as 0 until a Push* or Set* call invalidates it.
package owf

// Magic is the 4-byte big-endian value that opens every OWF packet,
// spelling "OWF1" in ASCII.
const Magic uint32 = 0x4F574631

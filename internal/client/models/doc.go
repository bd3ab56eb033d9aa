// Package models defines the wire types exchanged with the pdfnotes REST
// service.
//
// The service is not strict about shapes: identifiers arrive as "_id" or
// "id", a document's "user" is either an embedded object or a bare name,
// and single-resource replies may or may not be wrapped in an envelope. The
// decoders here accept every variant so the rest of the client sees one form.
package models

package source

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"

	"github.com/c360studio/gpsrgen/vocabulary"
)

// ErrDocumentNotFound is returned when no file matches a configured document
// path or pattern.
var ErrDocumentNotFound = errors.New("document not found")

// Document is the raw text of one reference document. A document configured
// as a glob may be assembled from several files.
type Document struct {
	// Kind is the vocabulary the document feeds.
	Kind vocabulary.Kind `json:"kind"`

	// Paths are the files the content was read from, in read order.
	Paths []string `json:"paths"`

	// Content is the markdown text. HTML sources are already converted.
	Content string `json:"-"`

	// Hash is the SHA-256 of Content.
	Hash string `json:"hash"`
}

// Texts maps loaded documents onto the parser input. Kinds that are missing
// from docs stay empty.
func Texts(docs []*Document) vocabulary.Documents {
	var out vocabulary.Documents
	for _, d := range docs {
		switch d.Kind {
		case vocabulary.KindNames:
			out.Names = d.Content
		case vocabulary.KindLocations:
			out.Locations = d.Content
		case vocabulary.KindRooms:
			out.Rooms = d.Content
		case vocabulary.KindObjects:
			out.Objects = d.Content
		}
	}
	return out
}

// ContentHash computes a SHA256 hash of the content.
func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// MimeTypeFromExtension returns the MIME type for a file extension.
func MimeTypeFromExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".md", ".markdown":
		return "text/markdown"
	case ".txt":
		return "text/plain"
	case ".html", ".htm":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}

// IsDocumentFile reports whether path has an extension the loader reads.
func IsDocumentFile(path string) bool {
	return MimeTypeFromExtension(filepath.Ext(path)) != "application/octet-stream"
}

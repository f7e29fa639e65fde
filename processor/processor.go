// Package processor defines the NATS stream and subjects shared by the
// jskos pipeline components. Subjects live here so the components, the
// CLI, and tests agree on one set of names.
package processor

const (
	// StreamName is the JetStream stream carrying all pipeline subjects.
	StreamName = "KOS"

	// StreamSubjects is the wildcard the stream binds.
	StreamSubjects = "kos.>"

	// IngestSubject carries ingest requests consumed by kos-ingester.
	IngestSubject = "kos.ingest.request"

	// RawSubject carries validated raw documents from kos-ingester to
	// kos-processor.
	RawSubject = "kos.document.raw"

	// ProcessedSubject carries processed documents from kos-processor to
	// rdf-export.
	ProcessedSubject = "kos.document.processed"

	// ExportSubject carries serialized RDF produced by rdf-export.
	ExportSubject = "kos.export.rdf"
)

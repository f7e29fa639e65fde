// Package skos defines the namespace and term IRIs of the W3C
// vocabularies the exporter speaks: SKOS core, the SKOS-XL extension,
// Dublin Core terms, Web Annotation, and the RDF/RDFS/OWL/XSD base
// vocabularies.
//
// The constants are plain strings so they concatenate cheaply into
// serializers and prefix tables.
package skos

// Package part holds the export catalog: the ordered set of parts (gene
// info, alleles, phenotype annotations, gene models, ...) a run can produce.
//
// The catalog ships as an embedded HCL file and is decoded once at process
// start. Registration order is the only source of processing order: [Registry.Select]
// always returns parts in that order, whatever order the caller named them in.
//
// Each part has a [Kind] whose [Behavior] row decides what the generate and
// validate stages do with it, so stage code never compares file type names.
package part

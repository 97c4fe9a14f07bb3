// Package ingest turns raw rating and catalog files into record streams.
//
// Ingestion is deliberately lenient: records with missing fields or an
// unparsable rating are skipped and counted, never reported as errors. Only
// I/O failures abort a read.
//
// The default dialect matches the Book-Crossing dump: `;`-separated fields,
// optional double quotes and a header line.
//
//	User-ID;ISBN;Book-Rating
//	"276725";"034545104X";"0"
package ingest

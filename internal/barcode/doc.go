// Package barcode locates linear (1-D) barcode regions in photographed
// images. Connected dark regions are parametrized as oriented boxes, filtered
// down to bar-like shapes, grouped by density clustering in a normalized
// angle/size/position feature space, and each validated group is emitted as a
// rotated BarcodeRect from which a de-rotated crop can be extracted.
//
// The package finds barcodes; it does not decode them.
package barcode
